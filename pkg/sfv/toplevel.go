package sfv

import "fmt"

// TopLevelType identifies which of the three RFC 8941 top-level shapes a
// structured HTTP field is declared to carry. The base package's normal
// component provider consults this to know how to parse and re-serialize
// a field's value when the "sf" component parameter is present.
type TopLevelType int

const (
	// TypeUnknown means no classification is available.
	TypeUnknown TopLevelType = iota
	TypeList
	TypeDictionary
	TypeItem
)

func (t TopLevelType) String() string {
	switch t {
	case TypeList:
		return "list"
	case TypeDictionary:
		return "dictionary"
	case TypeItem:
		return "item"
	default:
		return "unknown"
	}
}

// ParseAndReserialize parses raw per the declared top-level type and
// re-serializes it in strict form, normalizing whitespace and member
// ordering per RFC 9421 Section 2.1.
func ParseAndReserialize(raw string, t TopLevelType, limits Limits) (string, error) {
	p := NewParser(raw, limits)
	switch t {
	case TypeDictionary:
		dict, err := p.ParseDictionary()
		if err != nil {
			return "", err
		}
		return SerializeDictionary(dict)
	case TypeList:
		list, err := p.ParseList()
		if err != nil {
			return "", err
		}
		return SerializeList(list)
	case TypeItem:
		item, err := p.ParseItem()
		if err != nil {
			return "", err
		}
		return SerializeItem(*item)
	default:
		return "", fmt.Errorf("sfv: cannot serialize unknown top-level type")
	}
}
