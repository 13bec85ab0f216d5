// Package ledger holds the domain rules shared by the backend and the client:
// entry kinds, the fixed category set and the field bounds.
package ledger

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

const (
	DateLayout    = "2006-01-02"
	MaxMemoLength = 30
	MaxAmount     = 999_999_999_999
	MaxAmountLen  = 12

	// FallbackCategory is used when an imported row has no category.
	FallbackCategory = "기타"
)

// Categories is the fixed category set; the first element is the default.
var Categories = []string{
	"식비", "교통", "주거", "통신", "생활", "쇼핑", "의료", "문화", "교육", "경조사", "급여", "용돈", FallbackCategory,
}

var (
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidKind     = errors.New("type must be income or expense")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidMemo     = fmt.Errorf("memo must be at most %d characters", MaxMemoLength)
	ErrInvalidAmount   = fmt.Errorf("amount must be between 1 and %d", int64(MaxAmount))
)

// Label returns the display label of a kind.
func (k Kind) Label() string {
	if k == KindIncome {
		return "수입"
	}
	return "지출"
}

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func ValidateKind(s string) error {
	if !Kind(s).Valid() {
		return ErrInvalidKind
	}
	return nil
}

func ValidateCategory(s string) error {
	for _, c := range Categories {
		if c == s {
			return nil
		}
	}
	return ErrInvalidCategory
}

func ValidateMemo(s string) error {
	if utf8.RuneCountInString(s) > MaxMemoLength {
		return ErrInvalidMemo
	}
	return nil
}

func ValidateAmount(n int64) error {
	if n < 1 || n > MaxAmount {
		return ErrInvalidAmount
	}
	return nil
}
