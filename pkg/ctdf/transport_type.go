package ctdf

import "golang.org/x/exp/slices"

// TransportType is a NeTEx VehicleModeEnumeration value. Values outside the
// known set are carried through verbatim.
type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeBus        TransportType = "bus"
	TransportTypeTram       TransportType = "tram"
	TransportTypeFerry      TransportType = "ferry"
	TransportTypeCoach      TransportType = "coach"
	TransportTypeRail       TransportType = "rail"
	TransportTypeMetro      TransportType = "metro"
	TransportTypeWater      TransportType = "water"
	TransportTypeAir        TransportType = "air"
	TransportTypeCableway   TransportType = "cableway"
	TransportTypeFunicular  TransportType = "funicular"
	TransportTypeTrolleyBus TransportType = "trolleyBus"
)

var knownTransportTypes = []TransportType{
	TransportTypeBus,
	TransportTypeTram,
	TransportTypeFerry,
	TransportTypeCoach,
	TransportTypeRail,
	TransportTypeMetro,
	TransportTypeWater,
	TransportTypeAir,
	TransportTypeCableway,
	TransportTypeFunicular,
	TransportTypeTrolleyBus,
}

func (t TransportType) IsKnown() bool {
	return slices.Contains(knownTransportTypes, t)
}

func (t TransportType) String() string {
	return string(t)
}

func TransportTypesFromFields(fields []string) []TransportType {
	transportTypes := make([]TransportType, 0, len(fields))

	for _, field := range fields {
		transportTypes = append(transportTypes, TransportType(field))
	}

	return transportTypes
}
