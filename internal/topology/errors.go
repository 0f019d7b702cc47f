package topology

import "fmt"

// ConfigMissingError reports a mode, basket or server list absent from the
// configuration table.
type ConfigMissingError struct {
	What   string // "table", "mode", "basket" or a server list name
	Mode   string
	Basket string
}

func (e *ConfigMissingError) Error() string {
	switch e.What {
	case "table":
		return "topology: configuration table is not loaded"
	case "mode":
		return fmt.Sprintf("topology: mode %q is not configured", e.Mode)
	case "basket":
		return fmt.Sprintf("topology: basket %q is not configured for mode %q", e.Basket, e.Mode)
	default:
		return fmt.Sprintf("topology: %s has no entry for basket %q in mode %q", e.What, e.Basket, e.Mode)
	}
}

// IndexOutOfRangeError reports an instance number outside the basket's
// configured range.
type IndexOutOfRangeError struct {
	List     string
	Basket   string
	Instance int // 1-based
	Count    int
}

func (e *IndexOutOfRangeError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("topology: instance %d is out of range for %s of basket %q (no instances configured)",
			e.Instance, e.List, e.Basket)
	}
	return fmt.Sprintf("topology: instance %d is out of range for %s of basket %q (1-%d configured)",
		e.Instance, e.List, e.Basket, e.Count)
}
