// README: Cab aggregate and category definitions.
package fleet

import "cabway/internal/types"

type CabType string

const (
	CabTypeUberX    CabType = "uberx"
	CabTypeBlackSUV CabType = "blacksuv"
	CabTypeBlack    CabType = "black"
	CabTypeXL       CabType = "xl"
	CabTypeSmall    CabType = "s"
	CabTypePremium  CabType = "premium"
)

func (t CabType) Valid() bool {
	switch t {
	case CabTypeUberX, CabTypeBlackSUV, CabTypeBlack, CabTypeXL, CabTypeSmall, CabTypePremium:
		return true
	}
	return false
}

// Cab is a schedulable vehicle. Its committed bookings occupy disjoint
// time intervals; that invariant is enforced by the booking store, not
// assumed here.
type Cab struct {
	ID             types.ID
	Name           string
	PricePerMinute float64
	Type           CabType
	DriverID       types.ID
}
