package viz

import "math"

// Side-view link lengths in metres, base to wrist.
var linkLengths = []float64{0.317, 0.45, 0.48, 0.07}

// pitchJoints are the joints that bend the arm in the side view: the
// shoulder, elbow and wrist pitch axes of a seven-axis arm.
var pitchJoints = []int{1, 3, 5}

// armPoints projects a joint vector onto the side-view plane. The base is at
// the origin and the first link points straight up. Arms with fewer than
// seven joints treat every joint as a pitch joint.
func armPoints(q []float64) [][2]float64 {
	joints := pitchJoints
	if len(q) < 7 {
		joints = make([]int, 0, len(q))
		for i := range q {
			joints = append(joints, i)
		}
	}

	pts := make([][2]float64, 0, len(linkLengths)+1)
	pts = append(pts, [2]float64{0, 0}, [2]float64{0, linkLengths[0]})

	heading := 0.0
	for i, j := range joints {
		if i+1 >= len(linkLengths) {
			break
		}
		heading += q[j]
		last := pts[len(pts)-1]
		l := linkLengths[i+1]
		pts = append(pts, [2]float64{last[0] + l*math.Sin(heading), last[1] + l*math.Cos(heading)})
	}
	return pts
}

// DrawArm renders the side view of q scaled to fit the canvas, with the
// base at the bottom centre. Gripper fingers are drawn open by the last two
// joints of a nine-joint vector.
func (c *Canvas) DrawArm(q []float64) {
	w, h := c.Dots()
	reach := 0.0
	for _, l := range linkLengths {
		reach += l
	}
	scale := float64(h-4) / reach
	bx, by := w/2, h-2

	toDots := func(p [2]float64) (int, int) {
		return bx + int(math.Round(p[0]*scale)), by - int(math.Round(p[1]*scale))
	}

	c.DrawLine(bx-8, by+1, bx+8, by+1)

	pts := armPoints(q)
	for i := 1; i < len(pts); i++ {
		x0, y0 := toDots(pts[i-1])
		x1, y1 := toDots(pts[i])
		c.DrawLine(x0, y0, x1, y1)
		c.Blob(x1, y1, 1)
	}

	if len(q) >= 9 {
		tx, ty := toDots(pts[len(pts)-1])
		// finger travel is a few centimetres; exaggerate it to stay visible
		open := 2 + int(math.Round(math.Abs(q[7]-q[8])*100))
		c.DrawLine(tx-open, ty, tx-open, ty-4)
		c.DrawLine(tx+open, ty, tx+open, ty-4)
	}
}
