package models

import "fmt"

// ServiceType tags the four bookable service variants. Each variant lives in
// its own collection but shares the Service document shape.
type ServiceType string

const (
	ServiceTypeHall       ServiceType = "hall"
	ServiceTypeCatering   ServiceType = "catering"
	ServiceTypeCar        ServiceType = "car"
	ServiceTypeDecoration ServiceType = "decoration"
)

// AllServiceTypes lists every known variant; dispatch tables and index setup
// iterate this so a new variant only needs to be added here.
func AllServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceTypeHall,
		ServiceTypeCatering,
		ServiceTypeCar,
		ServiceTypeDecoration,
	}
}

// ParseServiceType validates a request-supplied tag.
func ParseServiceType(s string) (ServiceType, error) {
	switch t := ServiceType(s); t {
	case ServiceTypeHall, ServiceTypeCatering, ServiceTypeCar, ServiceTypeDecoration:
		return t, nil
	default:
		return "", fmt.Errorf("invalid service type %q", s)
	}
}

// Collection returns the mongo collection name backing the variant.
func (t ServiceType) Collection() string {
	switch t {
	case ServiceTypeHall:
		return "halls"
	case ServiceTypeCatering:
		return "caterings"
	case ServiceTypeCar:
		return "cars"
	case ServiceTypeDecoration:
		return "decorations"
	}
	return ""
}

func (t ServiceType) String() string {
	return string(t)
}
