// Package controller owns the fetch lifecycle of the directory browser.
//
// A Controller holds the current FetchState (Idle, Loading, Loaded or Failed),
// the fetched records and the current page index. Every transition produces a
// Snapshot with a monotonically increasing version which is handed to the
// registered observers outside the controller's lock.
//
// State machine:
//
//	Idle    --StartFetch--> Loading
//	Loading --success-----> Loaded
//	Loading --failure-----> Failed
//	Loaded  --Reset-------> Idle
//	Failed  --Reset-------> Idle
//	Failed  --StartFetch--> Loading
//
// There is no terminal state. Only one fetch per controller can be in flight;
// a Reset while Loading is refused with ErrFetchInFlight.
//
// Usage:
//
//	gw, _ := client.New(client.DefaultConfig())
//	ctrl, _ := controller.New(gw, controller.DefaultConfig())
//
//	done, ok := ctrl.StartFetch(ctx)
//	if ok {
//	    <-done
//	}
//	snap := ctrl.Snapshot()
//	fmt.Println(snap.Status)
package controller
