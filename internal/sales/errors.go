package sales

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"go-pos-dashboard/internal/apiclient"
)

// ValidationError is a draft that is missing or has malformed fields. The
// sale request is never sent.
type ValidationError struct {
	Op      string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StockError is a sale that would oversell a stockable product. It is raised
// by the local pre-check, or wraps the server's rejection when another till
// sold the last units first.
type StockError struct {
	Op         string
	Product    string
	Available  int
	Requested  int
	OutOfStock bool
	Message    string
	Err        error
}

func (e *StockError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.OutOfStock {
		return fmt.Sprintf("%s is out of stock", e.Product)
	}
	return fmt.Sprintf("Insufficient stock! Available: %d, Requested: %d", e.Available, e.Requested)
}

func (e *StockError) Unwrap() error {
	return e.Err
}

// Is lets callers match any StockError with errors.Is(err, &StockError{}).
func (e *StockError) Is(target error) bool {
	_, ok := target.(*StockError)
	return ok
}

var serverStockRe = regexp.MustCompile(`Available: (-?\d+), Requested: (\d+)`)

// stockRejection converts a server 400 about stock into a StockError.
// Other failures are returned unchanged.
func stockRejection(op string, err error) error {
	var httpErr *apiclient.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
		return err
	}
	msg := strings.ToLower(httpErr.Message)
	switch {
	case strings.Contains(msg, "out of stock"):
		return &StockError{Op: op, OutOfStock: true, Message: httpErr.Message, Err: err}
	case strings.Contains(msg, "insufficient stock"):
		se := &StockError{Op: op, Message: httpErr.Message, Err: err}
		if m := serverStockRe.FindStringSubmatch(httpErr.Message); m != nil {
			se.Available, _ = strconv.Atoi(m[1])
			se.Requested, _ = strconv.Atoi(m[2])
		}
		return se
	default:
		return err
	}
}
