// Package display presents the CPU framebuffer on screen: it uploads the
// rendered image as a GL texture and blits it with a fullscreen triangle.
package display

import (
	"fmt"
	"image"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ── Shaders ───────────────────────────────────────────────────────────────────

// blitVertSrc draws a fullscreen triangle via gl_VertexID (no VBO needed).
const blitVertSrc = `
#version 410 core
out vec2 fragUV;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    // Flip V: the CPU framebuffer stores row 0 at the top
    fragUV = vec2(pos[gl_VertexID].x, -pos[gl_VertexID].y) * 0.5 + 0.5;
}
` + "\x00"

// blitFragSrc is a straight texture fetch; the CPU side already gamma-encoded.
const blitFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D frame;

void main() {
    outColor = texture(frame, fragUV);
}
` + "\x00"

// ── Display ───────────────────────────────────────────────────────────────────

// Display owns the GL objects needed to present one image per frame.
type Display struct {
	prog     uint32
	frameLoc int32
	tex      uint32
	quadVAO  uint32
	width    int32
	height   int32
}

// New initializes GL and creates the blit pipeline for the given frame size.
// Must be called on the thread holding the GL context.
func New(width, height int) (*Display, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	prog, err := newProgram(blitVertSrc, blitFragSrc)
	if err != nil {
		return nil, fmt.Errorf("blit shader: %w", err)
	}

	d := &Display{
		prog:     prog,
		frameLoc: gl.GetUniformLocation(prog, gl.Str("frame\x00")),
		width:    int32(width),
		height:   int32(height),
	}

	gl.GenVertexArrays(1, &d.quadVAO)

	gl.GenTextures(1, &d.tex)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, d.width, d.height, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return d, nil
}

// Present uploads the image and draws it to the default framebuffer.
func (d *Display) Present(img *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, d.width, d.height,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, d.width, d.height)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(d.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(d.frameLoc, 0)

	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Destroy releases the GL objects.
func (d *Display) Destroy() {
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteVertexArrays(1, &d.quadVAO)
	gl.DeleteProgram(d.prog)
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
