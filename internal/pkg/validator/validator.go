package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// phonePattern accepts an optional leading plus followed by at least ten
// digits, spaces, hyphens or parentheses.
var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonName)
	if err := validate.RegisterValidation("phone", isPhone); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("utf16min", hasUTF16Min); err != nil {
		panic(err)
	}
}

// Issue is a single failed rule. Field is the JSON name of the field.
type Issue struct {
	Field string
	Tag   string
}

// Struct validates every field of v.
func Struct(v interface{}) []Issue {
	return collect(validate.Struct(v))
}

// Partial validates only the named Go struct fields of v.
func Partial(v interface{}, fields ...string) []Issue {
	if len(fields) == 0 {
		return nil
	}
	return collect(validate.StructPartial(v, fields...))
}

func collect(err error) []Issue {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Tag: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, e := range verrs {
		issues = append(issues, Issue{Field: e.Field(), Tag: e.Tag()})
	}
	return issues
}

func isPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// hasUTF16Min compares the length in UTF-16 code units, the way browser
// form validation counts, so "😀" has length 2.
func hasUTF16Min(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("utf16min: bad parameter %q", fl.Param()))
	}
	return UTF16Len(fl.Field().String()) >= n
}

// UTF16Len is the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
