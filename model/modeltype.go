package model

import "fmt"

// ModelType is the discriminator carried by every element. Snapshot switches
// over it to partition identifiables into an Environment.
type ModelType int

const (
	// ModelTypeUnknown is the zero value. Identifiables of this type are not
	// included in snapshots.
	ModelTypeUnknown ModelType = iota
	ModelTypeAssetAdministrationShell
	ModelTypeSubmodel
	ModelTypeConceptDescription
	ModelTypeProperty
	ModelTypeSubmodelElementCollection
	ModelTypeSubmodelElementList
)

var modelTypeNames = map[ModelType]string{
	ModelTypeUnknown:                   "Unknown",
	ModelTypeAssetAdministrationShell:  "AssetAdministrationShell",
	ModelTypeSubmodel:                  "Submodel",
	ModelTypeConceptDescription:        "ConceptDescription",
	ModelTypeProperty:                  "Property",
	ModelTypeSubmodelElementCollection: "SubmodelElementCollection",
	ModelTypeSubmodelElementList:       "SubmodelElementList",
}

// String returns the metamodel name of the type.
func (m ModelType) String() string {
	if name, ok := modelTypeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ModelType(%d)", int(m))
}

// ParseModelType is the inverse of String. Unrecognized names yield
// ModelTypeUnknown and false.
func ParseModelType(name string) (ModelType, bool) {
	for m, n := range modelTypeNames {
		if n == name {
			return m, true
		}
	}
	return ModelTypeUnknown, false
}

// MarshalText encodes the type by name.
func (m ModelType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a type name. Unknown names decode to ModelTypeUnknown.
func (m *ModelType) UnmarshalText(text []byte) error {
	*m, _ = ParseModelType(string(text))
	return nil
}
