package smaa

import (
	"math"

	"github.com/strauhmanis/smaa/internal/smaaimg"
)

// NeighborhoodBlending is the third and final SMAA pass: it reads the
// weight image produced by BlendingWeightCalculation and mixes each pixel
// with its dominant-direction neighbors through 1-D bilinear sampling.
//
// velocityImage may be nil. When reprojection is enabled and a velocity
// image is provided, the blended velocity magnitude is packed into the
// output alpha channel for a later temporal resolve pass.
func (s *Shader) NeighborhoodBlending(x, y int, colorImage, blendImage, velocityImage smaaimg.Reader) [4]float32 {
	// Fetch the blending weights for the current pixel:
	w := blendImage.GetPixel(x, y)
	left, top := w[2], w[0]
	right := blendImage.GetPixel(x+1, y)[3]
	bottom := blendImage.GetPixel(x, y+1)[1]

	// Is there any blending weight with a value greater than 0.0?
	if right+bottom+left+top < 1e-5 {
		color := colorImage.GetPixel(x, y)

		if s.enableReproj && velocityImage != nil {
			v := velocityImage.GetPixel(x, y)
			color[3] = packVelocity(v[0], v[1])
		}

		return color
	}

	// Calculate the blending offsets:
	var sample func(image smaaimg.Reader, x, y int, offset float32) [4]float32
	var offset1, offset2, weight1, weight2 float32

	if maxf(right, left) > maxf(bottom, top) { // max(horizontal) > max(vertical)
		sample = sampleBilinearHorizontal
		offset1 = right
		offset2 = -left
		weight1 = right / (right + left)
		weight2 = left / (right + left)
	} else {
		sample = sampleBilinearVertical
		offset1 = bottom
		offset2 = -top
		weight1 = bottom / (bottom + top)
		weight2 = top / (bottom + top)
	}

	// We exploit bilinear filtering to mix the current pixel with its
	// chosen neighbor:
	color1 := sample(colorImage, x, y, offset1)
	color2 := sample(colorImage, x, y, offset2)

	var color [4]float32
	for i := 0; i < 4; i++ {
		color[i] = weight1*color1[i] + weight2*color2[i]
	}

	if s.enableReproj && velocityImage != nil {
		// Antialias velocity for proper reprojection in a later stage:
		velocity1 := sample(velocityImage, x, y, offset1)
		velocity2 := sample(velocityImage, x, y, offset2)
		vx := weight1*velocity1[0] + weight2*velocity2[0]
		vy := weight1*velocity1[1] + weight2*velocity2[1]
		color[3] = packVelocity(vx, vy)
	}

	return color
}

// packVelocity compresses a velocity vector's magnitude into a single
// channel, the encoding Resolve's attenuation test expects to find in the
// alpha channel of both frames.
func packVelocity(vx, vy float32) float32 {
	return float32(math.Sqrt(5.0 * math.Sqrt(float64(vx*vx+vy*vy))))
}

// Resolve blends the current frame's antialiased color against the
// previous frame's resolved color for temporal accumulation. With
// reprojection enabled and a velocity image available, the previous frame
// is sampled at the velocity-reprojected position and attenuated where the
// packed velocity difference says the reprojection is unreliable;
// otherwise the two frames are averaged as-is. Only meaningful across a
// video sequence; a single-image pipeline never calls it.
func (s *Shader) Resolve(x, y int, currentColorImage, previousColorImage, velocityImage smaaimg.Reader) [4]float32 {
	var color [4]float32

	if s.enableReproj && velocityImage != nil {
		// Velocity is assumed to be calculated for motion blur, so it is
		// inverted for reprojection:
		v := velocityImage.GetPixel(x, y)
		current := currentColorImage.GetPixel(x, y)
		previous := sampleBilinear(previousColorImage, float32(x)-v[0], float32(y)-v[1])

		// Attenuate the previous pixel if the velocity is different:
		delta := absf(current[3]*current[3]-previous[3]*previous[3]) / 5.0
		weight := 0.5 * saturate(1.0-float32(math.Sqrt(float64(delta)))*s.reprojWeight)

		for i := 0; i < 4; i++ {
			color[i] = lerp(current[i], previous[i], weight)
		}
		return color
	}

	current := currentColorImage.GetPixel(x, y)
	previous := previousColorImage.GetPixel(x, y)
	for i := 0; i < 4; i++ {
		color[i] = (current[i] + previous[i]) * 0.5
	}
	return color
}
