package errors

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// fixedText lists errors whose messages carry no request data.
var fixedText = []error{
	ErrValidation,
	ErrPasswordTooLong,
	ErrDuplicateUsername,
	ErrInvalidCredentials,
	ErrInvalidToken,
	ErrScreenNotFound,
	ErrStore,
	gorm.ErrRecordNotFound,
	gorm.ErrDuplicatedKey,
	gorm.ErrForeignKeyViolated,
	gorm.ErrInvalidTransaction,
	gorm.ErrInvalidDB,
	context.Canceled,
	context.DeadlineExceeded,
	sql.ErrNoRows,
	sql.ErrConnDone,
	sql.ErrTxDone,
	driver.ErrBadConn,
}

// Redact describes err for log lines. Driver messages can quote column
// values (a duplicated session token, a username), so only error numbers,
// operations and fixed sentinel texts are kept.
func Redact(err error) string {
	if err == nil {
		return ""
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return fmt.Sprintf("mysql error %d", myErr.Number)
	}
	for _, known := range fixedText {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "network error: " + opErr.Op
	}

	inner := err
	for {
		next := errors.Unwrap(inner)
		if next == nil {
			break
		}
		inner = next
	}
	return fmt.Sprintf("unclassified error (%T)", inner)
}
