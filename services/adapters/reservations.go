package adapters

import (
	"fmt"
	"sync"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

// reservationLedger holds inventory holds in memory.
// Expiry is evaluated when reading, nothing sweeps old entries.
type reservationLedger struct {
	mutex        sync.Mutex
	reservations map[string]Reservation
	nower        mytime.Nower
	uuider       myuuid.UUIDer
}

func newReservationLedger(nower mytime.Nower, uuider myuuid.UUIDer) *reservationLedger {
	return &reservationLedger{
		reservations: map[string]Reservation{},
		nower:        nower,
		uuider:       uuider,
	}
}

// reserved sums the quantity of unexpired reservations for sku.
func (l *reservationLedger) reserved(sku string) int {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.reservedLocked(sku, l.nower.Now())
}

func (l *reservationLedger) reservedLocked(sku string, now time.Time) int {
	total := 0
	for _, r := range l.reservations {
		if r.SKU == sku && !mytime.IsExpired(now, r.ExpiresAt) {
			total += r.Quantity
		}
	}
	return total
}

// reserve records a hold when stock minus the unexpired holds covers quantity.
// Checking and recording happen under one lock so concurrent holds cannot oversell.
func (l *reservationLedger) reserve(sku string, quantity int, stock int, ttl time.Duration) (Reservation, error) {
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.nower.Now()
	available := stock - l.reservedLocked(sku, now)
	if available < quantity {
		return Reservation{}, fmt.Errorf("insufficient stock for %s: requested %d, available %d", sku, quantity, available)
	}

	reservation := Reservation{
		ID:        myuuid.Prefixed("rsv", l.uuider.Create()),
		SKU:       sku,
		Quantity:  quantity,
		ExpiresAt: now.Add(ttl),
	}
	l.reservations[reservation.ID] = reservation

	return reservation, nil
}

func (l *reservationLedger) release(reservationID string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	delete(l.reservations, reservationID)
}
