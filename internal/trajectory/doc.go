// Package trajectory turns a table of timestamped joint vectors into a
// continuous function of time.
//
// The package has two parts:
//
//   - [WaypointSet]: an ordered table of (time, joint vector) pairs with
//     strictly increasing timestamps
//   - [Interpolator]: builds a piecewise representation of a WaypointSet and
//     evaluates it at any query time
//
// # Example
//
//	set := trajectory.NewWaypointSet(9)
//	_ = set.Append(0.0, home)
//	_ = set.Append(2.5, reach)
//	ip := trajectory.NewInterpolator(set, trajectory.Linear)
//	if err := ip.Build(); err != nil {
//		return err
//	}
//	q, _ := ip.Evaluate(1.25)
//
// # Out-of-domain queries
//
// Times before the first waypoint evaluate to the first waypoint's values and
// times after the last waypoint evaluate to the last waypoint's values. Callers
// use [Interpolator.DomainUpper] to decide when a trajectory is finished.
//
// # Thread Safety
//
// Neither type is safe for concurrent mutation. A built Interpolator may be
// evaluated concurrently as long as its WaypointSet is not modified.
package trajectory
