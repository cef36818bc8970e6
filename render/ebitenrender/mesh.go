package ebitenrender

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn2d/graphics"
)

// mesh is the backend copy of one entity's uploaded state.
type mesh struct {
	uniform  graphics.Affine
	vertices []graphics.Vertex
	indices  []uint16
}

// triangleVertices places local vertices with uniform and maps UVs onto a
// srcW x srcH source image.
func triangleVertices(dst []ebiten.Vertex, uniform graphics.Affine, verts []graphics.Vertex, srcW, srcH float32) []ebiten.Vertex {
	for _, v := range verts {
		p := uniform.Apply(v.Position)
		dst = append(dst, ebiten.Vertex{
			DstX:   p.X,
			DstY:   p.Y,
			SrcX:   v.UV.X * srcW,
			SrcY:   v.UV.Y * srcH,
			ColorR: v.Color.R,
			ColorG: v.Color.G,
			ColorB: v.Color.B,
			ColorA: v.Color.A,
		})
	}
	return dst
}

// lineQuads turns a line list into screen-space quads of the given width,
// since ebiten only rasterizes triangles. Degenerate segments are skipped.
func lineQuads(dstV []ebiten.Vertex, dstI []uint16, uniform graphics.Affine, verts []graphics.Vertex, indices []uint16, width float32) ([]ebiten.Vertex, []uint16) {
	half := width / 2
	for i := 0; i+1 < len(indices); i += 2 {
		a, b := verts[indices[i]], verts[indices[i+1]]
		pa, pb := uniform.Apply(a.Position), uniform.Apply(b.Position)

		dx, dy := pb.X-pa.X, pb.Y-pa.Y
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half

		base := uint16(len(dstV))
		corners := [4]struct {
			p graphics.Vec2
			c graphics.Color
		}{
			{graphics.Vec2{X: pa.X + nx, Y: pa.Y + ny}, a.Color},
			{graphics.Vec2{X: pb.X + nx, Y: pb.Y + ny}, b.Color},
			{graphics.Vec2{X: pb.X - nx, Y: pb.Y - ny}, b.Color},
			{graphics.Vec2{X: pa.X - nx, Y: pa.Y - ny}, a.Color},
		}
		for _, corner := range corners {
			dstV = append(dstV, ebiten.Vertex{
				DstX:   corner.p.X,
				DstY:   corner.p.Y,
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: corner.c.R,
				ColorG: corner.c.G,
				ColorB: corner.c.B,
				ColorA: corner.c.A,
			})
		}
		dstI = append(dstI, base, base+1, base+2, base+2, base+3, base)
	}
	return dstV, dstI
}
