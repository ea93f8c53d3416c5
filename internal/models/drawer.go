package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DrawerState represents whether a drawer is held by a teller
type DrawerState string

const (
	DrawerStateFree     DrawerState = "FREE"
	DrawerStateOccupied DrawerState = "OCCUPIED"
)

// Drawer is a physical cash register slot. The drawer set is provisioned
// up front; this system only flips assignment, it never creates drawers.
type Drawer struct {
	AssignedAt     *time.Time  `db:"assigned_at"`
	AssignedTeller *string     `db:"assigned_teller"`
	Name           string      `db:"name"`
	State          DrawerState `db:"state"`
	ID             int64       `db:"id"`
}

// TellerBalance is the per-teller running total of cash and cheque
// holdings. One row per teller, created lazily on first reference.
type TellerBalance struct {
	UpdatedAt time.Time       `db:"updated_at"`
	Teller    string          `db:"teller"`
	Cash      decimal.Decimal `db:"cash"`
	Cheques   decimal.Decimal `db:"cheques"`
}
