// Package viz provides the terminal live view of a running controller.
//
// The view is a Bubble Tea program:
//
//   - [Model]: steps a controller in real time and draws the arm side view
//     on a braille [Canvas], one bar per joint and a chart of the selected
//     joint
//   - [Picker]: a list of named configurations that opens a [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reconfigure and restart from t=0
//	Tab   - Select the charted joint
//	T     - Cycle color themes
//	Q     - Quit
package viz
