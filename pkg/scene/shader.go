package scene

import (
	"math"

	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/material"
	"github.com/K2017/sdfmarch/pkg/sdf"
)

const (
	hitTolerance    = 1e-5
	shadowTolerance = 1e-3
	shadowMinStep   = 1e-4
	normalBias      = 1e-4
)

// Trace is the scene's public entry point: it installs the default light
// if the scene has none, then traces a ray through the full recursion
// depth. The shader never throws — a missing hit returns the background
// color.
func (s *Scene) Trace(ray core.Ray) core.Vec3 {
	return s.trace(ray, s.Properties.MaxDepth)
}

// minimumSurface returns the root node with the smallest signed distance
// at p, and that distance. Returns (nil, +Inf) if the scene has no roots.
func (s *Scene) minimumSurface(p core.Vec3) (sdf.Node, float64) {
	minDist := math.Inf(1)
	var minNode sdf.Node
	for _, node := range s.Roots {
		d := node.Distance(p)
		if d < minDist {
			minDist = d
			minNode = node
		}
	}
	return minNode, minDist
}

// raycast sphere-traces ray against the scene's roots, returning the hit
// node and the parameter t. t is -1 on a miss (far-plane exceeded); node
// may be nil if the scene has no roots, also treated as a miss.
func (s *Scene) raycast(ray core.Ray) (sdf.Node, float64) {
	t := 0.0
	var hit sdf.Node

	for i := 0; i < s.Properties.MaxRaymarchSteps; i++ {
		node, d := s.minimumSurface(ray.At(t))
		hit = node
		d = math.Abs(d)
		if d < hitTolerance {
			return hit, t
		}
		t += d
		if t > s.Properties.MaxRaymarchDist {
			return hit, -1
		}
	}
	return hit, t
}

// shadow implements the IQ closed-form soft-shadow integrator.
// https://iquilezles.org/www/articles/rmshadows/
func (s *Scene) shadow(ray core.Ray, k float64) float64 {
	res := 1.0
	ph := math.MaxFloat64
	t := 0.0

	for i := 0; i < s.Properties.MaxRaymarchSteps; i++ {
		_, h := s.minimumSurface(ray.At(t))
		if h < shadowTolerance {
			return 0
		}
		y := h * h / (2 * ph)
		d := math.Sqrt(math.Max(h*h-y*y, 0))
		res = math.Min(res, k*d/math.Max(shadowMinStep, t-y))
		ph = h
		t += h
		if t > s.Properties.MaxRaymarchDist {
			break
		}
	}
	return core.Clamp(res, 0, 1)
}

// fresnel computes the full (Schlick-equivalent) Fresnel reflectance for
// incident direction I against normal N, given the ratio of refractive
// indices etai (incident side) / etat (transmitted side).
func fresnel(i, n core.Vec3, etai, etat float64) float64 {
	cosI := core.Clamp(n.Dot(i), -1, 1)
	sinT := (etai / etat) * math.Sqrt(math.Max(1-cosI*cosI, 0))
	if sinT >= 1 {
		return 1
	}
	cosT := math.Sqrt(math.Max(1-sinT*sinT, 0))
	cosI = math.Abs(cosI)
	rs := (etat*cosI - etai*cosT) / (etat*cosI + etai*cosT)
	rp := (etai*cosI - etat*cosT) / (etai*cosI + etat*cosT)
	return (rs*rs + rp*rp) / 2
}

// lightingModel accumulates Blinn/Phong diffuse and specular terms over
// every light in the scene, applying soft-shadow attenuation per light
// before summation (not to the running total) so each light's occlusion
// only affects its own contribution.
func (s *Scene) lightingModel(p, facingNormal, view core.Vec3, mat material.Material) (diffuse, specular core.Vec3) {
	shadowBias := facingNormal.Multiply(0.1)

	for _, l := range s.effectiveLights() {
		toLight := l.Position.Subtract(p)
		lDir := toLight.Normalize()
		r := core.Reflect(lDir.Negate(), facingNormal).Normalize()

		dotLN := math.Max(lDir.Dot(facingNormal), 0)
		dotRV := math.Max(r.Dot(view), 0)

		d := l.Color.Multiply(dotLN * l.Intensity / (4 * math.Pi * toLight.Length()))
		spec := l.Color.Multiply(math.Pow(dotRV, mat.P) * l.Intensity)

		if s.Properties.Shadowing {
			shadowRay := core.NewRay(p.Add(shadowBias), lDir)
			f := s.shadow(shadowRay, s.Properties.ShadowIntensity)
			d = d.Multiply(f)
			spec = spec.Multiply(f)
		}

		diffuse = diffuse.Add(d)
		specular = specular.Add(spec)
	}
	return diffuse, specular
}

// finalColor composites the local lighting and Fresnel-weighted
// reflection/refraction terms into the pixel's final, clamped color.
func finalColor(mat material.Material, diffuse, specular, refraction, reflection core.Vec3, kr float64, lightCount int) core.Vec3 {
	reflectionTerm := reflection.Multiply(kr * mat.Ks)
	refractionTerm := refraction.Multiply((1 - kr) * mat.Transmittance)

	ambient := mat.Albedo.Multiply(mat.Ka / float64(lightCount))
	diffuseTerm := diffuse.MultiplyVec(mat.Albedo).Multiply(mat.Kd)
	specularTerm := specular.Multiply(kr * mat.Ks)

	local := ambient.Add(diffuseTerm).Add(specularTerm)
	return local.Add(reflectionTerm).Add(refractionTerm).Clamp(0, 1)
}

// trace is the recursive shader. depth decrements exactly once per
// recursive call and caps reflection/refraction at properties.MaxDepth.
func (s *Scene) trace(ray core.Ray, depth int) core.Vec3 {
	node, t := s.raycast(ray)
	if t < 0 || node == nil {
		return s.Properties.BackgroundColor
	}

	p := ray.At(t)
	sample := node.Sample(p)
	mat := sample.Material

	n := sdf.Normal(node, p, normalBias)
	inside := n.Dot(ray.Direction.Negate()) < 0
	facingNormal := n
	if inside {
		facingNormal = n.Negate()
	}

	if s.Debug.Normals {
		return n.Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
	}
	if s.Debug.Depth {
		cam := s.GetActiveCamera()
		var z float64
		if cam != nil {
			z = p.Subtract(cam.Position).Z
		}
		v := 1 / z
		return core.NewVec3(v, v, v)
	}

	var diffuse, specular core.Vec3
	if s.Properties.Illumination {
		diffuse, specular = s.lightingModel(p, facingNormal, ray.Direction.Negate(), mat)
	} else {
		diffuse = core.NewVec3(1, 1, 1)
	}

	kr := 0.5
	var refraction, reflection core.Vec3

	if s.Properties.Fresnel && depth > 0 {
		etai, etat := 1.0, mat.IOR
		if inside {
			etai, etat = etat, etai
		}

		rDir := core.Reflect(ray.Direction, facingNormal).Normalize()
		tDir := core.Refract(ray.Direction, facingNormal, etai/etat).Normalize()

		kr = fresnel(ray.Direction, facingNormal, etai, etat)

		if mat.Ks > 0 {
			bias := facingNormal.Multiply(1e-4)
			reflection = s.trace(core.NewRay(p.Add(bias), rDir), depth-1)
		}

		if kr < 1 && mat.Transmittance > 0 && mat.Ks > 0 {
			bias := facingNormal.Multiply(1e-4)
			refractOrigin := p.Subtract(bias)
			refraction = s.trace(core.NewRay(refractOrigin, tDir), depth-1)
		}
	}

	return finalColor(mat, diffuse, specular, refraction, reflection, kr, len(s.effectiveLights()))
}
