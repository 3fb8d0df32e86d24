package triangulate

// Facilities for converting a Y-monotone polygon into triangles. A Y monotone
// polygon is a simple polygon such that any horizontal line intersects at most
// two edges.
//
// The lexicographic Above() order is used to simulate a slightly rotated
// coordinate system that eliminates horizontal segments but note that this
// affects where horizontal segments are allowed while maintaining strict
// monotonicity. Specifically, on the left chain, a horizontal edge must sit
// _above_ the inside of the polygon, while on the right chain, it must sit
// _below_. The sweeps use the same order, so the pieces they produce always
// satisfy this.
//
// Note that the polygon must be counterclockwise.

type Triangle [3]int

// Triangulate one monotone piece, given as point ids in counterclockwise
// order. The triangles reference point ids and are all counterclockwise.
func TriangulateMonotone(data *PolygonData, piece []int) []Triangle {
	n := len(piece)
	if n < 3 {
		fatalf("cannot triangulate degenerate polygon with point count: %d", n)
	}
	if n == 3 {
		return appendTriangle(data, nil, Triangle{piece[0], piece[1], piece[2]})
	}

	triangles := make([]Triangle, 0, n-2)

	// Find the top point
	var topIndex int
	for i, id := range piece {
		if Above(data.Pos(id), data.Pos(piece[topIndex])) {
			topIndex = i
		}
	}

	// Merge sort points starting from top, noting which are on the left chain,
	// and track the bottom point separately. Walking forward from the top of a
	// counterclockwise polygon runs down its left side.
	sortedPoints := make([]int, 0, n)
	sortedPoints = append(sortedPoints, piece[topIndex])
	leftChain := make(map[int]struct{})
	isLeft := func(id int) bool {
		_, ok := leftChain[id]
		return ok
	}

	leftOffset := 1
	rightOffset := 1
	var bottomPoint int
	for {
		leftPoint := piece[CircularIndex(topIndex+leftOffset, n)]
		rightPoint := piece[CircularIndex(topIndex-rightOffset, n)]

		// If we've met up, we're done. We don't add the bottom point to the list,
		// as it's handled at the very end.
		if leftPoint == rightPoint {
			bottomPoint = leftPoint
			break
		}

		if Above(data.Pos(leftPoint), data.Pos(rightPoint)) {
			leftChain[leftPoint] = struct{}{}
			sortedPoints = append(sortedPoints, leftPoint)
			leftOffset++
		} else {
			sortedPoints = append(sortedPoints, rightPoint)
			rightOffset++
		}
	}

	// Create the stack and populate it with the first two points
	stack := make(IndexStack, 0, n)
	stack.Push(sortedPoints[0])
	stack.Push(sortedPoints[1])
	for i := 2; i < len(sortedPoints); i++ {
		p := sortedPoints[i]
		left := isLeft(p)
		if left != isLeft(stack.Peek()) { // If switched to opposite side chain
			// Monotonicity guarantees that every stack point is visible from the
			// current point, so the whole stack is emptied into triangles.
			for !stack.Empty() {
				a := stack.Pop()
				if stack.Empty() {
					break
				}
				b := stack.Peek()
				if left {
					/*
					              b
					             /|
					 diagonal-> / |
					           p--a
					*/
					triangles = appendTriangle(data, triangles, Triangle{p, a, b})
				} else {
					/*
						b
						|\ <- Diagonal
						| \
						a--p
					*/
					triangles = appendTriangle(data, triangles, Triangle{a, p, b})
				}
			}
			stack.Push(sortedPoints[i-1])
			stack.Push(p)
		} else { // Same side chain
			// Always pop the last point off. If we don't create any triangles this
			// time, we'll put it back
			v := stack.Pop()
			for !stack.Empty() {
				topOfStack := stack.Peek()
				// The easiest way to see if the point "sees" the top of the stack is to
				// try creating the triangle, and see if it's CCW
				var potentialTriangle Triangle
				if left {
					/*
						q
						|\
						v \
						  \\ <- diagonal
						    \
						     p
					*/
					potentialTriangle = Triangle{p, topOfStack, v}
				} else {
					/*
						               q
						              /|
						             / v
						            / /
						diagonal-> //
						          /
						         p
					*/
					potentialTriangle = Triangle{p, v, topOfStack}
				}
				if data.triangleArea(potentialTriangle) > 0 {
					v = stack.Pop()
					triangles = append(triangles, potentialTriangle)
				} else {
					break
				}
			}
			stack.Push(v)
			stack.Push(p)
		}
	}

	// Finally, fan the bottom point out to everything left on the stack. There
	// are always at least two points there. Stopping one short, as a pure
	// diagonal generator would, would lose the last triangle.
	l := stack.Pop()
	for !stack.Empty() {
		p := stack.Pop()
		if isLeft(l) {
			/*
				   p
				 / |
				l  | <- diagonal
				 \ |
				   b
			*/
			triangles = appendTriangle(data, triangles, Triangle{bottomPoint, p, l})
		} else {
			/*
				            p
				            | \
				diagonal -> |  l
				            | /
				            b
			*/
			triangles = appendTriangle(data, triangles, Triangle{bottomPoint, l, p})
		}
		l = p
	}
	return triangles
}

func (data *PolygonData) triangleArea(tri Triangle) float64 {
	return TriangleSignedArea(data.Pos(tri[0]), data.Pos(tri[1]), data.Pos(tri[2]))
}

// Zero area is tolerated, since collinear input points can produce slivers,
// but a clockwise triangle means the piece was not monotone.
func appendTriangle(data *PolygonData, triangles []Triangle, tri Triangle) []Triangle {
	if data.triangleArea(tri) < -Tolerance {
		fatalf("triangle is clockwise: %v %v %v", data.Pos(tri[0]), data.Pos(tri[1]), data.Pos(tri[2]))
	}
	return append(triangles, tri)
}
