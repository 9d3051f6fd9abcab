package suffixlcp

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/nuclio/logger"
	"github.com/pkg/errors"
)

// Options control how an Index is built. The zero value is valid: SA-IS,
// sparse table, no text transforms, no cache.
type Options struct {
	Strategy Strategy
	RangeMin RMQKind

	// FoldCase and Normalize transform the text (and later the patterns)
	// with Unicode case folding and NFC. Both require valid UTF-8.
	FoldCase  bool
	Normalize bool

	// CacheSize bounds the number of memoized Search results; 0 disables it.
	CacheSize int

	// Workers bounds BuildAll parallelism; 0 means GOMAXPROCS.
	Workers int

	Logger logger.Logger
}

func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Strategy, validation.In(SAIS, Doubling, Naive)),
		validation.Field(&o.RangeMin, validation.In(SparseTableRMQ, HybridRMQ)),
		validation.Field(&o.CacheSize, validation.Min(0)),
		validation.Field(&o.Workers, validation.Min(0)),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidOptions, err.Error())
	}
	return nil
}

func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{SAIS, Doubling, Naive} {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidOptions, "unknown strategy %q", name)
}

func ParseRMQKind(name string) (RMQKind, error) {
	for _, k := range []RMQKind{SparseTableRMQ, HybridRMQ} {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidOptions, "unknown range-min kind %q", name)
}
