// Package control provides tick-driven joint controllers.
//
// Controllers implement the [sim.Controller] interface: Configure once, then
// call Step once per control tick to get the next joint targets:
//
//   - [Trajectory]: interpolates a waypoint table and completes once the
//     clock passes the last waypoint
//   - [Pattern]: holds one of a fixed set of joint patterns chosen by time window
//   - [RandomPattern]: a Pattern whose table is drawn within joint limits
//
// # Usage
//
//	ctrl := control.NewTrajectory(set, trajectory.Linear, logger)
//	q0, err := ctrl.Configure()
//	for {
//		q, continuing := ctrl.Step(dt)
//		// forward q to the actuators
//		if !continuing {
//			break
//		}
//	}
//
// All returned vectors are in radians and owned by the caller.
package control
