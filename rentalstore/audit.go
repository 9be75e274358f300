package rentalstore

import (
	jsoniter "github.com/json-iterator/go"
)

// auditRecord is the serialized trail of one committed business transaction.
// Only the fields relevant to the operation are set.
type auditRecord struct {
	Operation    string `json:"operation"`
	AccountNo    string `json:"account_no,omitempty"`
	Holder       string `json:"holder,omitempty"`
	Amount       int64  `json:"amount,omitempty"`
	NewBalance   int64  `json:"new_balance,omitempty"`
	InstrumentID string `json:"instrument_id,omitempty"`
	StudentID    string `json:"student_id,omitempty"`
	AgreementID  string `json:"agreement_id,omitempty"`
}

// audit logs the record of a committed transaction at info level if a
// logger is configured. Rejected and failed transactions are never audited;
// they left no committed state behind.
func (c Coordinator) audit(record auditRecord) {
	if c.logger == nil {
		return
	}

	recordJSON, marshalErr := jsoniter.ConfigFastest.MarshalToString(record)
	if marshalErr != nil {
		c.logger.Warn("failed to marshal audit record", logAttrOperation, record.Operation, logAttrError, marshalErr.Error())
		return
	}

	c.logger.Info(logMsgCommitted, logAttrOperation, record.Operation, logAttrAudit, recordJSON)
}
