package shader

// Built-in WGSL sources for the GUI pipeline. The vertex shader maps
// point-space positions to clip space using a per-frame uniform holding the
// screen size; the fragment shader modulates the bound texture by the vertex
// color. Vertex colors arrive as Unorm8x4 sRGB and are linearized here so
// blending happens in linear space.

// GuiVertexWGSL is the vertex stage of the built-in GUI pipeline.
const GuiVertexWGSL = `
struct Uniforms {
    screen_size: vec2<f32>,
    _pad: vec2<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
};

fn srgb_to_linear(c: vec3<f32>) -> vec3<f32> {
    let cutoff = c < vec3<f32>(0.04045);
    let lower = c / vec3<f32>(12.92);
    let higher = pow((c + vec3<f32>(0.055)) / vec3<f32>(1.055), vec3<f32>(2.4));
    return select(higher, lower, cutoff);
}

@vertex
fn vs_main(
    @location(0) pos: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(
        2.0 * pos.x / u.screen_size.x - 1.0,
        1.0 - 2.0 * pos.y / u.screen_size.y,
        0.0,
        1.0,
    );
    out.uv = uv;
    out.color = vec4<f32>(srgb_to_linear(color.rgb), color.a);
    return out;
}
`

// GuiFragmentWGSL is the fragment stage of the built-in GUI pipeline.
const GuiFragmentWGSL = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
};

@group(1) @binding(0) var t_texture: texture_2d<f32>;
@group(1) @binding(1) var s_texture: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color * textureSample(t_texture, s_texture, in.uv);
}
`
