package render

import "math"

// ArcToCubics approximates the canvas arc centered on (cx, cy)
// by cubic Bézier curves, each spanning at most a quarter turn.
// It returns the start point of the arc and the curves, as
// (x1, y1, x2, y2, x, y) control and end points.
// Angles follow the canvas convention (radians, y axis pointing down,
// clockwise unless antiClockwise).
func ArcToCubics(cx, cy, radius, startAngle, endAngle float64, antiClockwise bool) (x0, y0 float64, curves [][6]float64) {
	sweep := arcSweep(startAngle, endAngle, antiClockwise)
	x0, y0 = cx+radius*math.Cos(startAngle), cy+radius*math.Sin(startAngle)
	if sweep == 0 || radius == 0 {
		return x0, y0, nil
	}

	n := int(math.Ceil(math.Abs(sweep)/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	theta := sweep / float64(n)
	k := 4. / 3 * math.Tan(theta/4)
	a1 := startAngle
	for i := 0; i < n; i++ {
		a2 := a1 + theta
		sin1, cos1 := math.Sincos(a1)
		sin2, cos2 := math.Sincos(a2)
		p0x, p0y := cx+radius*cos1, cy+radius*sin1
		p3x, p3y := cx+radius*cos2, cy+radius*sin2
		curves = append(curves, [6]float64{
			p0x - k*radius*sin1, p0y + k*radius*cos1,
			p3x + k*radius*sin2, p3y - k*radius*cos2,
			p3x, p3y,
		})
		a1 = a2
	}
	return x0, y0, curves
}

// arcSweep returns the signed angle covered by the arc,
// in [-2π, 2π].
func arcSweep(startAngle, endAngle float64, antiClockwise bool) float64 {
	const fullTurn = 2 * math.Pi
	sweep := endAngle - startAngle
	if !antiClockwise {
		if sweep >= fullTurn {
			return fullTurn
		}
		if sweep < 0 {
			sweep = math.Mod(sweep, fullTurn)
			if sweep < 0 {
				sweep += fullTurn
			}
		}
		return sweep
	}
	if sweep <= -fullTurn {
		return -fullTurn
	}
	if sweep > 0 {
		sweep = math.Mod(sweep, fullTurn)
		if sweep > 0 {
			sweep -= fullTurn
		}
	}
	return sweep
}
