package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domain "hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/interface/api/rest/dto/account"
)

const maxNameLen = 64

var (
	phoneRe   = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	licenseRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

	registerOnce sync.Once
)

// RegisterJSONNames makes binding errors report json field names instead of
// Go struct field names.
func RegisterJSONNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*playground.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// BindingDetails flattens binding tag failures into field -> message.
func BindingDetails(err error) (map[string]string, bool) {
	var ves playground.ValidationErrors
	if !errors.As(err, &ves) {
		return nil, false
	}

	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "max":
			out[fe.Field()] = "must be at most " + fe.Param() + " characters"
		case "numeric":
			out[fe.Field()] = "must contain digits only"
		case "gte", "lte":
			out[fe.Field()] = "is out of range"
		default:
			out[fe.Field()] = "is invalid"
		}
	}
	return out, true
}

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 || p > domain.MaxPage {
		return 0, errors.New("invalid page")
	}
	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateDoctor checks request shape only; catalog membership and
// uniqueness belong to the lifecycle service.
func ValidateDoctor(r account.DoctorRequest) map[string]string {
	errs := make(map[string]string)

	first := strings.TrimSpace(r.FirstName)
	last := strings.TrimSpace(r.LastName)
	phone := strings.TrimSpace(r.PhoneNumber)
	license := strings.TrimSpace(r.LicenseNumber)

	if first != "" && !isHumanName(first) {
		errs["first_name"] = "allowed characters: letters, space, '-', '''"
	} else if utf8.RuneCountInString(first) > maxNameLen {
		errs["first_name"] = "must be at most 64 characters"
	}

	if last != "" && !isHumanName(last) {
		errs["last_name"] = "allowed characters: letters, space, '-', '''"
	} else if utf8.RuneCountInString(last) > maxNameLen {
		errs["last_name"] = "must be at most 64 characters"
	}

	if license != "" && !licenseRe.MatchString(license) {
		errs["license_number"] = "allowed characters: letters, digits, '-'"
	}

	if phone != "" && !phoneRe.MatchString(strings.NewReplacer(" ", "", "-", "").Replace(phone)) {
		errs["phone_number"] = "must be 8-15 digits, optionally prefixed with '+'"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// ParseAuditFilter reads the audit query string. Times are RFC3339.
func ParseAuditFilter(action, targetID, from, to, limit string) (audit.Filter, map[string]string) {
	var (
		f    audit.Filter
		errs = make(map[string]string)
	)

	if action != "" {
		f.ActionCode = audit.ActionCode(strings.ToUpper(action))
		if !f.ActionCode.Valid() {
			errs["action"] = "unknown action code"
		}
	}

	if targetID != "" {
		if ok, id := IsUUID(targetID); ok {
			f.TargetID = &id
		} else {
			errs["target_id"] = "must be a valid UUID"
		}
	}

	if from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			f.From = &t
		} else {
			errs["from"] = "must be an RFC3339 timestamp"
		}
	}
	if to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			f.To = &t
		} else {
			errs["to"] = "must be an RFC3339 timestamp"
		}
	}

	if limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			f.Limit = n
		} else {
			errs["limit"] = "must be a positive integer"
		}
	}

	if len(errs) == 0 {
		return f, nil
	}
	return f, errs
}

func isHumanName(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return false
	}
	return true
}
