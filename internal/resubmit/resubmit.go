// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package resubmit implements the per-tick schedule transformer that
// invokes the host's transmit callback and reschedules the events it was
// given according to a retry policy.
//
// A resubmission function never touches the pending set: it is a pure
// schedule-to-schedule transformer lifted into whatever effect the
// transmit callback requires.
package resubmit

import (
	"github.com/luxfi/log"

	"github.com/luxfi/walletsubmit/internal/retry"
	"github.com/luxfi/walletsubmit/internal/schedule"
	"github.com/luxfi/walletsubmit/internal/slot"
	"github.com/luxfi/walletsubmit/internal/txaux"
)

// Transmitter is the host-injected capability that actually diffuses a
// batch of transaction blobs to the network. Its return value, if any, is
// irrelevant to the scheduler: the blockchain, via RemPending, is the only
// oracle of success.
type Transmitter func(batch []txaux.TxAux)

// Func is the resubmission function's signature: given the current slot,
// the events due this tick, and the schedule with that slot's bucket
// already popped, produce the resulting schedule.
type Func func(current slot.Slot, eventsDue []schedule.SendEvent, after schedule.Schedule) schedule.Schedule

// Default builds the standard resubmission function: invoke transmit with
// the due events' blobs, then for each event consult policy and reinsert
// either another send or a confirmation probe.
func Default(transmit Transmitter, policy retry.Policy) Func {
	return func(current slot.Slot, eventsDue []schedule.SendEvent, after schedule.Schedule) schedule.Schedule {
		if len(eventsDue) > 0 {
			blobs := make([]txaux.TxAux, len(eventsDue))
			for i, ev := range eventsDue {
				blobs[i] = ev.Aux
			}
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Error("transmit callback panicked", "recovered", r)
					}
				}()
				transmit(blobs)
			}()
		}

		sch := after
		for _, ev := range eventsDue {
			count := ev.Count + 1
			next := policy.Next(count, current)
			switch next.Kind {
			case retry.SendIn:
				sch = sch.Prepend(next.Slot, schedule.Events{
					Sends: []schedule.SendEvent{{ID: ev.ID, Aux: ev.Aux, Count: count}},
				})
			case retry.CheckConfirmedIn:
				sch = sch.Prepend(next.Slot, schedule.Events{
					Confirms: []schedule.ConfirmEvent{{ID: ev.ID}},
				})
			}
		}
		return sch
	}
}
