package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// WGSL sources for the two vertex pipelines and the post-processing passes.
// The real backend compiles these once at initialization; the sources are
// exported so external backends can reuse them.

// ShaderShape renders untextured vertex-colored triangles.
const ShaderShape = `
struct Uniforms {
    proj: mat3x2<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;

struct VSIn {
    @location(0) pos: vec2<f32>,
    @location(1) color: vec4<f32>,
};

struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(in: VSIn) -> VSOut {
    var out: VSOut;
    let p = u.proj * vec3<f32>(in.pos, 1.0);
    out.pos = vec4<f32>(p, 0.0, 1.0);
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
    return vec4<f32>(in.color.rgb * in.color.a, in.color.a);
}
`

// ShaderSprite renders textured quads modulated by a vertex color.
const ShaderSprite = `
struct Uniforms {
    proj: mat3x2<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var atlas: texture_2d<f32>;
@group(0) @binding(2) var samp: sampler;

struct VSIn {
    @location(0) pos: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
};

struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
};

@vertex
fn vs_main(in: VSIn) -> VSOut {
    var out: VSOut;
    let p = u.proj * vec3<f32>(in.pos, 1.0);
    out.pos = vec4<f32>(p, 0.0, 1.0);
    out.uv = in.uv;
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
    let t = textureSample(atlas, samp, in.uv);
    return t * in.color;
}
`

// ShaderBright extracts pixels above the bloom threshold at half resolution.
const ShaderBright = `
struct Params {
    threshold: f32,
    _pad: vec3<f32>,
};
@group(0) @binding(0) var<uniform> p: Params;
@group(0) @binding(1) var scene: texture_2d<f32>;
@group(0) @binding(2) var samp: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let c = textureSample(scene, samp, uv);
    let luma = dot(c.rgb, vec3<f32>(0.2126, 0.7152, 0.0722));
    if (luma < p.threshold) {
        return vec4<f32>(0.0, 0.0, 0.0, 1.0);
    }
    return vec4<f32>(c.rgb * (luma - p.threshold) / max(luma, 1e-4), 1.0);
}
`

// ShaderBlur is the separable Gaussian blur. The direction uniform selects
// the horizontal or vertical pass; weights are uploaded per frame.
const ShaderBlur = `
struct Params {
    dir: vec2<f32>,
    taps: f32,
    _pad: f32,
    weights: array<vec4<f32>, 16>,
};
@group(0) @binding(0) var<uniform> p: Params;
@group(0) @binding(1) var src: texture_2d<f32>;
@group(0) @binding(2) var samp: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let n = i32(p.taps);
    let half_n = n / 2;
    var acc = vec3<f32>(0.0);
    for (var i = 0; i < n; i = i + 1) {
        let w = p.weights[i / 4][i % 4];
        let offset = f32(i - half_n);
        acc = acc + textureSample(src, samp, uv + p.dir * offset).rgb * w;
    }
    return vec4<f32>(acc, 1.0);
}
`

// ShaderComposite combines scene, bloom and light map with vignette,
// overlay, chromatic aberration and radial distortion.
const ShaderComposite = `
struct Params {
    bloom_strength: f32,
    vignette: f32,
    aberration: f32,
    lightmap_on: f32,
    overlay: vec4<f32>,
    distort_center: vec2<f32>,
    distort_strength: f32,
    _pad: f32,
};
@group(0) @binding(0) var<uniform> p: Params;
@group(0) @binding(1) var scene: texture_2d<f32>;
@group(0) @binding(2) var bloom: texture_2d<f32>;
@group(0) @binding(3) var lightmap: texture_2d<f32>;
@group(0) @binding(4) var samp: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    var suv = uv;
    let dc = suv - p.distort_center;
    suv = suv + dc * p.distort_strength * dot(dc, dc);

    var col: vec3<f32>;
    if (p.aberration > 0.0) {
        let off = vec2<f32>(p.aberration, 0.0);
        col = vec3<f32>(
            textureSample(scene, samp, suv + off).r,
            textureSample(scene, samp, suv).g,
            textureSample(scene, samp, suv - off).b,
        );
    } else {
        col = textureSample(scene, samp, suv).rgb;
    }

    col = col + textureSample(bloom, samp, suv).rgb * p.bloom_strength;
    if (p.lightmap_on > 0.5) {
        col = col * textureSample(lightmap, samp, suv).rgb;
    }

    let d = distance(uv, vec2<f32>(0.5, 0.5));
    let vig = 1.0 - smoothstep(0.4, 0.75, d) * p.vignette;
    col = col * vig;

    col = mix(col, p.overlay.rgb, p.overlay.a);
    return vec4<f32>(col, 1.0);
}
`

// CompileShader compiles WGSL source to SPIR-V words via naga.
// SPIR-V is little-endian 32-bit words.
func CompileShader(label, source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("gpu: compiling shader %q: %w", label, err)
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
