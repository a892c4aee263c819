package catalog

const (
	KindSpecialization     Kind = "specializations"
	KindGovernorate        Kind = "governorates"
	KindEducation          Kind = "education_levels"
	KindDeactivationReason Kind = "deactivation_reasons"
)

type (
	Kind  string
	Entry struct {
		Code  string `yaml:"code" json:"code"`
		Label string `yaml:"label" json:"label"`
	}
	Entries []Entry
)

func (k Kind) Valid() bool {
	switch k {
	case KindSpecialization, KindGovernorate, KindEducation, KindDeactivationReason:
		return true
	}
	return false
}

// Provider is a read-only lookup over externally supplied code sets.
type Provider interface {
	Version() string
	Contains(kind Kind, code string) bool
	ResolveLabel(kind Kind, code string) (string, bool)
	Entries(kind Kind) Entries
}
