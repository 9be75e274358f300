package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/soundgood/rentalstore-go/rentalstore"
	"github.com/soundgood/rentalstore-go/rentalstore/postgresengine/internal/adapters"
)

const (
	defaultLockTimeout = 5 * time.Second

	tableHolder          = "holder"
	tableAccount         = "account"
	tableStudent         = "student"
	tableInstrument      = "rental_instrument"
	tableInstrumentFee   = "instrument_fee"
	tableRentalAgreement = "rental_agreement"

	colHolderID       = "holder_id"
	colHolderName     = "name"
	colAccountNo      = "account_no"
	colBalance        = "balance"
	colStudentID      = "student_id"
	colStudentName    = "name"
	colInstrumentID   = "rental_instrument_id"
	colInstrumentType = "instrument"
	colBrand          = "brand"
	colCategory       = "category"
	colFee            = "fee"
	colAgreementID    = "rental_agreement_id"
	colDateRented     = "date_rented"
	colDateReturned   = "date_returned"

	aliasInstrument = "ri"
	aliasFee        = "f"

	dialectPostgres = "postgres"

	actionQuery = "query"
	actionExec  = "exec"

	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgDBExecFailed     = "database execution failed"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgBeginFailed      = "failed to begin transaction"
	logMsgSQLExecuted      = "executed sql for: "
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrDurationMS      = "duration_ms"
)

var (
	// ErrNilDatabaseConnection is returned when a store is created from a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed is returned when a SQL query could not be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryFailed is returned when a SQL query could not be executed.
	ErrQueryFailed = errors.New("executing query failed")

	// ErrScanningDBRowFailed is returned when a result row could not be scanned.
	ErrScanningDBRowFailed = errors.New("scanning database row failed")

	// ErrBeginFailed is returned when a transaction could not be opened.
	ErrBeginFailed = errors.New("beginning transaction failed")
)

type sqlQueryString = string

// Store implements rentalstore.Store on PostgreSQL. Row locks are taken
// with SELECT ... FOR UPDATE, and every transaction bounds its lock wait
// with a local lock_timeout so blocked operations fail with
// rentalstore.ErrLockTimeout instead of waiting forever.
type Store struct {
	db          adapters.DBAdapter
	logger      rentalstore.Logger
	lockTimeout time.Duration
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:          db,
		lockTimeout: defaultLockTimeout,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Begin opens a business transaction on a connection checked out of the
// pool and bounds its row-lock waits with the configured lock timeout.
func (s *Store) Begin(ctx context.Context) (rentalstore.Tx, error) {
	tx, beginErr := s.db.Begin(ctx)
	if beginErr != nil {
		s.logError(logMsgBeginFailed, beginErr)
		return nil, errors.Join(ErrBeginFailed, beginErr)
	}

	timeoutStmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())

	if _, execErr := tx.Exec(ctx, timeoutStmt); execErr != nil {
		_ = tx.Rollback(ctx)
		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, timeoutStmt)

		return nil, errors.Join(ErrBeginFailed, execErr)
	}

	return &storeTx{engine: s, tx: tx}, nil
}

// GetAccount retrieves an account without locking it, on a pooled
// auto-commit connection; no transaction stays open after it returns.
func (s *Store) GetAccount(ctx context.Context, accountNo string) (rentalstore.Account, error) {
	return s.queryAccount(ctx, s.db.Query, accountNo, false)
}

// ListInstruments retrieves the instruments with no active rental
// agreement, optionally restricted to one instrument type.
func (s *Store) ListInstruments(ctx context.Context, typeFilter string) ([]rentalstore.Instrument, error) {
	builder := goqu.Dialect(dialectPostgres)

	activeAgreement := builder.
		From(tableRentalAgreement).
		Select(goqu.L("1")).
		Where(
			goqu.I(tableRentalAgreement+"."+colInstrumentID).Eq(goqu.I(aliasInstrument+"."+colInstrumentID)),
			goqu.C(colDateReturned).IsNull(),
		)

	selectStmt := builder.
		From(goqu.T(tableInstrument).As(aliasInstrument)).
		LeftJoin(
			goqu.T(tableInstrumentFee).As(aliasFee),
			goqu.On(goqu.I(aliasInstrument+"."+colInstrumentID).Eq(goqu.I(aliasFee+"."+colInstrumentID))),
		).
		Select(
			goqu.I(aliasInstrument+"."+colInstrumentID),
			goqu.I(aliasInstrument+"."+colInstrumentType),
			goqu.I(aliasInstrument+"."+colBrand),
			goqu.I(aliasInstrument+"."+colCategory),
			goqu.I(aliasFee+"."+colFee),
		).
		Where(goqu.L("NOT EXISTS ?", activeAgreement)).
		Order(goqu.I(aliasInstrument + "." + colInstrumentID).Asc())

	if typeFilter != "" {
		selectStmt = selectStmt.Where(goqu.I(aliasInstrument + "." + colInstrumentType).Eq(typeFilter))
	}

	sqlQuery, buildErr := s.toSQL(selectStmt)
	if buildErr != nil {
		return nil, buildErr
	}

	rows, queryErr := s.executeQuery(ctx, s.db.Query, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	instruments := make([]rentalstore.Instrument, 0)

	for rows.Next() {
		var id, instrumentType, brand, category string
		var fee sql.NullString

		if scanErr := rows.Scan(&id, &instrumentType, &brand, &category, &fee); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(ErrScanningDBRowFailed, scanErr)
		}

		instruments = append(instruments, rentalstore.BuildInstrument(id, instrumentType, brand, category, fee.String))
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, s.classifyQueryError(rowsErr, sqlQuery)
	}

	return instruments, nil
}

// queryFunc is satisfied by both the pooled adapter and an open transaction.
type queryFunc func(ctx context.Context, query string) (adapters.DBRows, error)

// queryAccount runs the account select either pooled or inside a
// transaction, with or without FOR UPDATE.
func (s *Store) queryAccount(
	ctx context.Context,
	query queryFunc,
	accountNo string,
	exclusive bool,
) (rentalstore.Account, error) {

	var empty rentalstore.Account

	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableAccount).
		Join(goqu.T(tableHolder), goqu.Using(colHolderID)).
		Select(
			goqu.I(tableAccount+"."+colAccountNo),
			goqu.I(tableAccount+"."+colBalance),
			goqu.I(tableHolder+"."+colHolderName),
		).
		Where(goqu.I(tableAccount + "." + colAccountNo).Eq(accountNo))

	if exclusive {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, buildErr := s.toSQL(selectStmt)
	if buildErr != nil {
		return empty, buildErr
	}

	rows, queryErr := s.executeQuery(ctx, query, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return empty, s.classifyQueryError(rowsErr, sqlQuery)
		}

		return empty, rentalstore.ErrAccountNotFound
	}

	var number, holderName string
	var balance int64

	if scanErr := rows.Scan(&number, &balance, &holderName); scanErr != nil {
		s.logError(logMsgScanRowFailed, scanErr)
		return empty, errors.Join(ErrScanningDBRowFailed, scanErr)
	}

	return rentalstore.BuildAccount(number, holderName, balance), nil
}

// executeQuery runs the SQL and logs it with its duration at debug level.
func (s *Store) executeQuery(ctx context.Context, query queryFunc, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := query(ctx, sqlQuery)
	s.logQueryWithDuration(actionQuery, sqlQuery, time.Since(start))

	if queryErr != nil {
		return nil, s.classifyQueryError(queryErr, sqlQuery)
	}

	return rows, nil
}

// classifyQueryError maps a driver error to the store's error taxonomy,
// recognizing lock-timeout failures.
func (s *Store) classifyQueryError(err error, sqlQuery string) error {
	s.logError(logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)

	if s.db.IsLockTimeout(err) {
		return errors.Join(rentalstore.ErrLockTimeout, err)
	}

	return errors.Join(ErrQueryFailed, err)
}

func (s *Store) toSQL(stmt *goqu.SelectDataset) (sqlQueryString, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr)
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// storeTx implements rentalstore.Tx over one open database transaction.
type storeTx struct {
	engine *Store
	tx     adapters.DBTx
}

func (t *storeTx) GetAccount(ctx context.Context, accountNo string, exclusive bool) (rentalstore.Account, error) {
	return t.engine.queryAccount(ctx, t.tx.Query, accountNo, exclusive)
}

func (t *storeTx) UpdateAccountBalance(ctx context.Context, accountNo string, newBalance int64) (int64, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableAccount).
		Set(goqu.Record{colBalance: newBalance}).
		Where(goqu.C(colAccountNo).Eq(accountNo))

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		t.engine.logError(logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return t.exec(ctx, sqlQuery)
}

func (t *storeTx) InsertAccount(ctx context.Context, accountNo string, balance int64, holderID int64) (int64, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableAccount).
		Cols(colAccountNo, colBalance, colHolderID).
		Vals(goqu.Vals{accountNo, balance, holderID})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		t.engine.logError(logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return t.exec(ctx, sqlQuery)
}

func (t *storeTx) DeleteAccount(ctx context.Context, accountNo string) (int64, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(tableAccount).
		Where(goqu.C(colAccountNo).Eq(accountNo))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		t.engine.logError(logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return t.exec(ctx, sqlQuery)
}

// FindOrCreateHolder resolves the holder id for a name with an atomic
// upsert, so two concurrent account creations for the same new name cannot
// both attempt the insert.
func (t *storeTx) FindOrCreateHolder(ctx context.Context, name string) (int64, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableHolder).
		Cols(colHolderName).
		Vals(goqu.Vals{name}).
		OnConflict(goqu.DoUpdate(colHolderName, goqu.Record{colHolderName: name})).
		Returning(colHolderID)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		t.engine.logError(logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := t.engine.executeQuery(ctx, t.tx.Query, sqlQuery)
	if queryErr != nil {
		return 0, queryErr
	}
	defer t.engine.closeRows(rows)

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return 0, t.engine.classifyQueryError(rowsErr, sqlQuery)
		}

		return 0, errors.Join(ErrQueryFailed, errors.New("holder upsert returned no row"))
	}

	var holderID int64
	if scanErr := rows.Scan(&holderID); scanErr != nil {
		t.engine.logError(logMsgScanRowFailed, scanErr)
		return 0, errors.Join(ErrScanningDBRowFailed, scanErr)
	}

	return holderID, nil
}

// GetInstrument reads the instrument row, locking it when exclusive. The
// fee lives in its own table and is read separately so the locking read
// never targets the nullable side of an outer join.
func (t *storeTx) GetInstrument(ctx context.Context, instrumentID string, exclusive bool) (rentalstore.Instrument, error) {
	var empty rentalstore.Instrument

	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableInstrument).
		Select(colInstrumentID, colInstrumentType, colBrand, colCategory).
		Where(goqu.C(colInstrumentID).Eq(instrumentID))

	if exclusive {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, buildErr := t.engine.toSQL(selectStmt)
	if buildErr != nil {
		return empty, buildErr
	}

	rows, queryErr := t.engine.executeQuery(ctx, t.tx.Query, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}

	var id, instrumentType, brand, category string

	found, readErr := t.engine.scanSingleRow(rows, sqlQuery, &id, &instrumentType, &brand, &category)
	if readErr != nil {
		return empty, readErr
	}

	if !found {
		return empty, rentalstore.ErrInstrumentNotFound
	}

	fee, feeErr := t.instrumentFee(ctx, instrumentID)
	if feeErr != nil {
		return empty, feeErr
	}

	return rentalstore.BuildInstrument(id, instrumentType, brand, category, fee), nil
}

// instrumentFee reads the fee for an instrument; a missing fee row yields
// an empty fee, not an error.
func (t *storeTx) instrumentFee(ctx context.Context, instrumentID string) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableInstrumentFee).
		Select(colFee).
		Where(goqu.C(colInstrumentID).Eq(instrumentID))

	sqlQuery, buildErr := t.engine.toSQL(selectStmt)
	if buildErr != nil {
		return "", buildErr
	}

	rows, queryErr := t.engine.executeQuery(ctx, t.tx.Query, sqlQuery)
	if queryErr != nil {
		return "", queryErr
	}

	var fee string

	found, readErr := t.engine.scanSingleRow(rows, sqlQuery, &fee)
	if readErr != nil {
		return "", readErr
	}

	if !found {
		return "", nil
	}

	return fee, nil
}

func (t *storeTx) GetStudent(ctx context.Context, studentID string, exclusive bool) (rentalstore.Student, error) {
	var empty rentalstore.Student

	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableStudent).
		Select(colStudentID, colStudentName).
		Where(goqu.C(colStudentID).Eq(studentID))

	if exclusive {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, buildErr := t.engine.toSQL(selectStmt)
	if buildErr != nil {
		return empty, buildErr
	}

	rows, queryErr := t.engine.executeQuery(ctx, t.tx.Query, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}

	var id, name string

	found, readErr := t.engine.scanSingleRow(rows, sqlQuery, &id, &name)
	if readErr != nil {
		return empty, readErr
	}

	if !found {
		return empty, rentalstore.ErrStudentNotFound
	}

	return rentalstore.Student{ID: id, Name: name}, nil
}

func (t *storeTx) GetActiveRentals(ctx context.Context, studentID string, exclusive bool) ([]rentalstore.RentalAgreement, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableRentalAgreement).
		Select(colAgreementID, colInstrumentID, colStudentID, colDateRented).
		Where(
			goqu.C(colStudentID).Eq(studentID),
			goqu.C(colDateReturned).IsNull(),
		).
		Order(goqu.C(colDateRented).Asc())

	if exclusive {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, buildErr := t.engine.toSQL(selectStmt)
	if buildErr != nil {
		return nil, buildErr
	}

	rows, queryErr := t.engine.executeQuery(ctx, t.tx.Query, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer t.engine.closeRows(rows)

	agreements := make([]rentalstore.RentalAgreement, 0)

	for rows.Next() {
		var idText, instrumentID, student string
		var dateRented time.Time

		if scanErr := rows.Scan(&idText, &instrumentID, &student, &dateRented); scanErr != nil {
			t.engine.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(ErrScanningDBRowFailed, scanErr)
		}

		id, parseErr := uuid.Parse(idText)
		if parseErr != nil {
			t.engine.logError(logMsgScanRowFailed, parseErr)
			return nil, errors.Join(ErrScanningDBRowFailed, parseErr)
		}

		agreements = append(agreements, rentalstore.RentalAgreement{
			ID:           id,
			InstrumentID: instrumentID,
			StudentID:    student,
			DateRented:   dateRented,
		})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, t.engine.classifyQueryError(rowsErr, sqlQuery)
	}

	return agreements, nil
}

func (t *storeTx) ActiveRentalExistsForInstrument(ctx context.Context, instrumentID string) (bool, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(tableRentalAgreement).
		Select(goqu.L("1")).
		Where(
			goqu.C(colInstrumentID).Eq(instrumentID),
			goqu.C(colDateReturned).IsNull(),
		).
		Limit(1)

	sqlQuery, buildErr := t.engine.toSQL(selectStmt)
	if buildErr != nil {
		return false, buildErr
	}

	rows, queryErr := t.engine.executeQuery(ctx, t.tx.Query, sqlQuery)
	if queryErr != nil {
		return false, queryErr
	}
	defer t.engine.closeRows(rows)

	exists := rows.Next()

	if rowsErr := rows.Err(); rowsErr != nil {
		return false, t.engine.classifyQueryError(rowsErr, sqlQuery)
	}

	return exists, nil
}

func (t *storeTx) InsertRentalAgreement(ctx context.Context, agreement rentalstore.RentalAgreement) (int64, error) {
	record := goqu.Record{
		colAgreementID:  agreement.ID.String(),
		colInstrumentID: agreement.InstrumentID,
		colStudentID:    agreement.StudentID,
		colDateRented:   agreement.DateRented,
	}

	if agreement.DateReturned != nil {
		record[colDateReturned] = *agreement.DateReturned
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(tableRentalAgreement).
		Rows(record)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		t.engine.logError(logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return t.exec(ctx, sqlQuery)
}

// CloseRentalAgreement sets the return date of an active agreement. The
// date_returned IS NULL guard keeps the return date immutable: closing an
// already-closed agreement affects zero rows.
func (t *storeTx) CloseRentalAgreement(ctx context.Context, agreementID string, returnedAt time.Time) (int64, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(tableRentalAgreement).
		Set(goqu.Record{colDateReturned: returnedAt}).
		Where(
			goqu.C(colAgreementID).Eq(agreementID),
			goqu.C(colDateReturned).IsNull(),
		)

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		t.engine.logError(logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return t.exec(ctx, sqlQuery)
}

func (t *storeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *storeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// exec runs a write statement inside the transaction and returns the rows affected.
func (t *storeTx) exec(ctx context.Context, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := t.tx.Exec(ctx, sqlQuery)
	t.engine.logQueryWithDuration(actionExec, sqlQuery, time.Since(start))

	if execErr != nil {
		t.engine.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)

		if t.engine.db.IsLockTimeout(execErr) {
			return 0, errors.Join(rentalstore.ErrLockTimeout, execErr)
		}

		return 0, errors.Join(ErrQueryFailed, execErr)
	}

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		t.engine.logError(logMsgDBExecFailed, rowsErr, logAttrQuery, sqlQuery)
		return 0, errors.Join(ErrQueryFailed, rowsErr)
	}

	return rowsAffected, nil
}

// scanSingleRow scans the first row of a result set into dest and closes
// the rows. Returns false without error when the result set is empty.
func (s *Store) scanSingleRow(rows adapters.DBRows, sqlQuery string, dest ...any) (bool, error) {
	defer s.closeRows(rows)

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return false, s.classifyQueryError(rowsErr, sqlQuery)
		}

		return false, nil
	}

	if scanErr := rows.Scan(dest...); scanErr != nil {
		s.logError(logMsgScanRowFailed, scanErr)
		return false, errors.Join(ErrScanningDBRowFailed, scanErr)
	}

	return true, nil
}
