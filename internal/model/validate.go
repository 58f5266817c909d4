package model

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrInvalidSettings reports an unsupported test configuration.
var ErrInvalidSettings = errors.New("invalid settings")

// ErrInvalidEntry reports a malformed leaderboard record.
var ErrInvalidEntry = errors.New("invalid leaderboard entry")

var (
	validateOnce sync.Once
	validate     *validator.Validate
	trans        ut.Translator
)

func engine() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		var err error
		if validate, trans, err = newEngine(); err != nil {
			panic(fmt.Sprintf("model: init validator: %v", err))
		}
	})
	return validate, trans
}

func newEngine() (*validator.Validate, ut.Translator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	tr, found := uni.GetTranslator("en")
	if !found {
		return nil, nil, errors.New("english translator not registered")
	}
	if err := enTranslations.RegisterDefaultTranslations(v, tr); err != nil {
		return nil, nil, fmt.Errorf("register translations: %w", err)
	}
	return v, tr, nil
}

// Validate checks that the settings describe a supported test.
func (s Settings) Validate() error {
	v, tr := engine()
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, describe(err, tr))
	}
	return nil
}

// ValidateEntry checks a leaderboard record read from a store.
func ValidateEntry(e LeaderboardEntry) error {
	v, tr := engine()
	if err := v.Struct(e); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEntry, describe(err, tr))
	}
	if e.CreatedAt.IsZero() {
		return fmt.Errorf("%w: createdAt is a required field", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Username) == "" {
		return fmt.Errorf("%w: username is blank", ErrInvalidEntry)
	}
	return nil
}

func describe(err error, tr ut.Translator) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Translate(tr))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// ParseMode converts a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s)
}

// ParseDifficulty converts a user-supplied difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSettings, s)
}

// ParseTestType converts a user-supplied test type name.
func ParseTestType(s string) (TestType, error) {
	switch t := TestType(strings.ToLower(strings.TrimSpace(s))); t {
	case TestTypeTime, TestTypeWords:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown test type %q", ErrInvalidSettings, s)
}

// TimeLimitDuration returns the configured time limit.
func (s Settings) TimeLimitDuration() time.Duration {
	return time.Duration(s.TimeLimit) * time.Second
}
