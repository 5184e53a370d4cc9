package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/spaghettifunk/anima2d/engine/core"
)

// FrameStats counts the work issued since the last Begin.
type FrameStats struct {
	DrawCalls int
	Vertices  int
	Indices   int
}

type options struct {
	maxSprites int
}

type Option func(*options)

// WithMaxSprites sizes the staging batch for n quads (4n vertices, 6n indices).
func WithMaxSprites(n int) Option {
	return func(o *options) {
		o.maxSprites = n
	}
}

// Renderer2D draws points, lines, triangles, rectangles and circles. Every
// shape call resets the batch, stages the shape with the current color,
// uploads it and issues exactly one draw call. A Renderer2D must only be used
// from the thread that owns the graphics context.
type Renderer2D struct {
	id      uuid.UUID
	device  Device
	window  WindowSizer
	batch   *Batch
	buffers Buffers
	program Program
	color   Color

	inFrame   bool
	destroyed bool
	stats     FrameStats
}

// NewRenderer2D compiles the shader program and allocates the device buffers.
// Any failure is returned and leaves no device resources behind.
func NewRenderer2D(device Device, window WindowSizer, source ShaderSource, opts ...Option) (*Renderer2D, error) {
	o := &options{maxSprites: DefaultMaxSprites}
	for _, opt := range opts {
		opt(o)
	}

	r := &Renderer2D{
		id:     uuid.New(),
		device: device,
		window: window,
		batch:  NewBatch(o.maxSprites),
		color:  Red,
	}

	program, err := device.CompileProgram(source)
	if err != nil {
		core.LogError("renderer %s: shader %q: %s", r.id, source.Name, err)
		return nil, err
	}
	r.program = program

	buffers, err := device.CreateBuffers(r.batch.VertexCapacity(), r.batch.IndexCapacity())
	if err != nil {
		device.DeleteProgram(program)
		return nil, fmt.Errorf("failed to allocate batch buffers: %w", err)
	}
	r.buffers = buffers

	core.LogDebug("renderer %s created: %d vertices, %d indices",
		r.id, r.batch.VertexCapacity(), r.batch.IndexCapacity())
	return r, nil
}

func (r *Renderer2D) ID() uuid.UUID {
	return r.id
}

func (r *Renderer2D) Batch() *Batch {
	return r.batch
}

// Begin opens a frame: it activates the program, sets a pixel-space
// orthographic projection with the origin at the top-left corner, enables
// source-over blending and resets the draw color to white.
func (r *Renderer2D) Begin() error {
	if r.destroyed {
		return core.ErrRendererDestroyed
	}
	width, height := r.window.FramebufferSize()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	r.device.UseProgram(r.program)
	r.device.SetProjection(r.program, Projection(width, height))
	r.device.EnableBlend()
	r.color = White
	r.stats = FrameStats{}
	r.inFrame = true
	return nil
}

// End closes the frame and unbinds the program. The program stays alive for
// the next Begin.
func (r *Renderer2D) End() {
	if !r.inFrame {
		return
	}
	r.device.UseProgram(0)
	r.inFrame = false
}

// Projection maps pixel coordinates of a width x height surface to clip space.
func Projection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

func (r *Renderer2D) SetColor(red, green, blue, alpha float32) {
	r.color = RGBA(red, green, blue, alpha)
}

func (r *Renderer2D) SetColorRGBA(c Color) {
	r.SetColor(c.R, c.G, c.B, c.A)
}

func (r *Renderer2D) Color() Color {
	return r.color
}

func (r *Renderer2D) Stats() FrameStats {
	return r.stats
}

// DrawPoint draws a single point of the given size in pixels. A size <= 0
// returns core.ErrInvalidSize.
func (r *Renderer2D) DrawPoint(x, y, size float32) error {
	return r.DrawPointZ(x, y, 0, size)
}

// DrawPointZ is DrawPoint with an explicit depth coordinate.
func (r *Renderer2D) DrawPointZ(x, y, z, size float32) error {
	return r.draw(PrimitivePoints, func(b *Batch, color mgl32.Vec4) error {
		if size <= 0 {
			return fmt.Errorf("%w: point size %v", core.ErrInvalidSize, size)
		}
		if err := b.Reserve(1, 0); err != nil {
			return err
		}
		_, err := b.AppendVertex(mgl32.Vec3{x, y, z}, color)
		return err
	}, func() {
		r.device.SetPointSize(size)
	})
}

// DrawLine draws a segment of the given width in pixels. A width <= 0
// returns core.ErrInvalidSize.
func (r *Renderer2D) DrawLine(x1, y1, x2, y2, width float32) error {
	return r.draw(PrimitiveLines, func(b *Batch, color mgl32.Vec4) error {
		if width <= 0 {
			return fmt.Errorf("%w: line width %v", core.ErrInvalidSize, width)
		}
		if err := b.Reserve(2, 0); err != nil {
			return err
		}
		if _, err := b.AppendVertex(mgl32.Vec3{x1, y1, 0}, color); err != nil {
			return err
		}
		_, err := b.AppendVertex(mgl32.Vec3{x2, y2, 0}, color)
		return err
	}, func() {
		r.device.SetLineWidth(width)
	})
}

func (r *Renderer2D) DrawTriangle(x1, y1, x2, y2, x3, y3 float32) error {
	return r.draw(PrimitiveTriangles, func(b *Batch, color mgl32.Vec4) error {
		return stagePolygon(b, color, [][2]float32{{x1, y1}, {x2, y2}, {x3, y3}}, []uint32{0, 1, 2})
	}, nil)
}

// DrawRectangle draws a quad from four corners. The corners must be given in
// a consistent winding order (clockwise or counter-clockwise); the quad is
// split along the corner 1 to corner 3 diagonal and a crossed order produces
// two overlapping triangles.
func (r *Renderer2D) DrawRectangle(x1, y1, x2, y2, x3, y3, x4, y4 float32) error {
	return r.draw(PrimitiveTriangles, func(b *Batch, color mgl32.Vec4) error {
		return stagePolygon(b, color, [][2]float32{{x1, y1}, {x2, y2}, {x3, y3}, {x4, y4}}, rectangleIndices[:])
	}, nil)
}

// DrawRect draws an axis-aligned rectangle with its top-left corner at (x, y).
func (r *Renderer2D) DrawRect(x, y, width, height float32) error {
	return r.DrawRectangle(x, y, x+width, y, x+width, y+height, x, y+height)
}

// DrawCircle draws a filled circle tessellated into CircleSegments triangles.
func (r *Renderer2D) DrawCircle(cx, cy, radius float32) error {
	return r.draw(PrimitiveTriangles, func(b *Batch, color mgl32.Vec4) error {
		return stageCircle(b, cx, cy, radius, color)
	}, nil)
}

// ReloadShaders replaces the program. On failure the current program is kept.
func (r *Renderer2D) ReloadShaders(source ShaderSource) error {
	if r.destroyed {
		return core.ErrRendererDestroyed
	}
	program, err := r.device.CompileProgram(source)
	if err != nil {
		core.LogWarn("renderer %s: keeping previous program, reload of %q failed: %s", r.id, source.Name, err)
		return err
	}
	old := r.program
	r.program = program
	r.device.DeleteProgram(old)
	if r.inFrame {
		width, height := r.window.FramebufferSize()
		r.device.UseProgram(program)
		r.device.SetProjection(program, Projection(max(width, 1), max(height, 1)))
	}
	core.LogInfo("renderer %s: shader %q reloaded", r.id, source.Name)
	return nil
}

// Destroy releases the device buffers and the program. It is safe to call
// more than once.
func (r *Renderer2D) Destroy() {
	if r.destroyed {
		return
	}
	r.End()
	r.device.DeleteBuffers(r.buffers)
	r.device.DeleteProgram(r.program)
	r.buffers = Buffers{}
	r.program = 0
	r.destroyed = true
}

// draw runs the per-shape protocol. A staging error skips the draw and leaves
// the batch empty; raster state set by prepare is applied before the draw.
func (r *Renderer2D) draw(mode Primitive, stage func(*Batch, mgl32.Vec4) error, prepare func()) error {
	if r.destroyed {
		return core.ErrRendererDestroyed
	}
	if !r.inFrame {
		return core.ErrFrameNotBegun
	}
	r.batch.Reset()
	if err := stage(r.batch, r.color.Vec4()); err != nil {
		r.batch.Reset()
		return fmt.Errorf("%s draw skipped: %w", mode, err)
	}
	if prepare != nil {
		prepare()
	}
	r.batch.UploadAndDraw(r.device, r.buffers, r.program, mode)

	r.stats.DrawCalls++
	r.stats.Vertices += r.batch.VertexCount()
	r.stats.Indices += r.batch.IndexCount()
	return nil
}

func stagePolygon(b *Batch, color mgl32.Vec4, corners [][2]float32, indices []uint32) error {
	if err := b.Reserve(len(corners), len(indices)); err != nil {
		return err
	}
	for _, c := range corners {
		if _, err := b.AppendVertex(mgl32.Vec3{c[0], c[1], 0}, color); err != nil {
			return err
		}
	}
	for _, idx := range indices {
		if err := b.AppendIndex(idx); err != nil {
			return err
		}
	}
	return nil
}
