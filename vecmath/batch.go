package vecmath

import (
	"unsafe"

	"github.com/ajroetker/go-highway/hwy"
)

// floatsAdd performs dst[i] += s[i] over flat float32 slices using the
// SIMD-dispatched hwy primitives, mirroring the lanes-then-tail loop shape of
// hwy/contrib/vec's BaseAdd, with the tail handled via hwy.ProcessWithTail's
// mask-load/mask-store pair rather than a scalar remainder loop.
func floatsAdd(dst, s []float32) {
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			vd := hwy.Load(dst[offset:])
			vs := hwy.Load(s[offset:])
			hwy.Store(hwy.Add(vd, vs), dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[float32](count)
			vd := hwy.MaskLoad(mask, dst[offset:])
			vs := hwy.MaskLoad(mask, s[offset:])
			hwy.MaskStore(mask, hwy.Add(vd, vs), dst[offset:])
		},
	)
}

// floatsAddMul performs dst[i] += s[i]*scale using a fused multiply-add, so
// the result is computed with a single rounding per element.
func floatsAddMul(dst, s []float32, scale float32) {
	vscale := hwy.Set(scale)
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			vd := hwy.Load(dst[offset:])
			vs := hwy.Load(s[offset:])
			hwy.Store(hwy.FMA(vs, vscale, vd), dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[float32](count)
			vd := hwy.MaskLoad(mask, dst[offset:])
			vs := hwy.MaskLoad(mask, s[offset:])
			hwy.MaskStore(mask, hwy.FMA(vs, vscale, vd), dst[offset:])
		},
	)
}

func floatsScale(dst []float32, scale float32) {
	vscale := hwy.Set(scale)
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			vd := hwy.Load(dst[offset:])
			hwy.Store(hwy.Mul(vd, vscale), dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[float32](count)
			vd := hwy.MaskLoad(mask, dst[offset:])
			hwy.MaskStore(mask, hwy.Mul(vd, vscale), dst[offset:])
		},
	)
}

// floatsDot computes the dot product of two flat float32 slices, grounded on
// hwy/contrib/vec/dot_base.go's BaseDot: SIMD-accumulate full vectors with
// FMA, fold the tail in via a masked load (inactive lanes read as zero, so
// they contribute nothing to the sum) rather than a scalar remainder loop,
// then reduce the accumulator to a scalar. Uses the shorter of the two
// slices' lengths.
func floatsDot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := hwy.Zero[float32]()
	hwy.ProcessWithTail[float32](n,
		func(offset int) {
			va := hwy.Load(a[offset:])
			vb := hwy.Load(b[offset:])
			sum = hwy.MulAdd(va, vb, sum)
		},
		func(offset, count int) {
			mask := hwy.TailMask[float32](count)
			va := hwy.MaskLoad(mask, a[offset:])
			vb := hwy.MaskLoad(mask, b[offset:])
			sum = hwy.MulAdd(va, vb, sum)
		},
	)
	return hwy.ReduceSum(sum)
}

// flattenV2 reinterprets a []V2 as a flat []float32 of length 2*len(s),
// without copying. V2 has no padding, so this is a direct reinterpretation.
func flattenV2(s []V2) []float32 {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&s[0])), len(s)*2)
}

// flattenV3 reinterprets a []V3 as a flat []float32 of length 4*len(s); the
// 4th lane per element is the zeroed padding lane documented on V3.
func flattenV3(s []V3) []float32 {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&s[0])), len(s)*4)
}

func flattenV4(s []V4) []float32 {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&s[0])), len(s)*4)
}

// AddSliceV3 performs dst[i] = dst[i] + rhs[i] in place. Panics if the
// slices differ in length.
func AddSliceV3(dst, rhs []V3) {
	if len(dst) != len(rhs) {
		panic("vecmath: AddSliceV3 length mismatch")
	}
	floatsAdd(flattenV3(dst), flattenV3(rhs))
}

// AddMulSliceV3 performs dst[i] += rhs[i]*scale in place using FMA. Panics
// if the slices differ in length.
func AddMulSliceV3(dst, rhs []V3, scale float32) {
	if len(dst) != len(rhs) {
		panic("vecmath: AddMulSliceV3 length mismatch")
	}
	floatsAddMul(flattenV3(dst), flattenV3(rhs), scale)
}

// ScaleSliceV3 performs dst[i] *= scale in place.
func ScaleSliceV3(dst []V3, scale float32) {
	floatsScale(flattenV3(dst), scale)
}

// DotSliceV3 computes the aggregate dot product of a and b's flattened
// backing arrays (the padding lane of each V3 is always zero, so it never
// contributes). Uses the shorter of the two slices' lengths.
func DotSliceV3(a, b []V3) float32 {
	return floatsDot(flattenV3(a), flattenV3(b))
}

// AddSliceV2 performs dst[i] = dst[i] + rhs[i] in place. Panics if the
// slices differ in length.
func AddSliceV2(dst, rhs []V2) {
	if len(dst) != len(rhs) {
		panic("vecmath: AddSliceV2 length mismatch")
	}
	floatsAdd(flattenV2(dst), flattenV2(rhs))
}

// AddMulSliceV2 performs dst[i] += rhs[i]*scale in place using FMA. Panics
// if the slices differ in length.
func AddMulSliceV2(dst, rhs []V2, scale float32) {
	if len(dst) != len(rhs) {
		panic("vecmath: AddMulSliceV2 length mismatch")
	}
	floatsAddMul(flattenV2(dst), flattenV2(rhs), scale)
}

// DotSliceV2 computes the aggregate dot product of a and b's flattened
// backing arrays. Uses the shorter of the two slices' lengths.
func DotSliceV2(a, b []V2) float32 {
	return floatsDot(flattenV2(a), flattenV2(b))
}

// AddSliceV4 performs dst[i] = dst[i] + rhs[i] in place. Panics if the
// slices differ in length.
func AddSliceV4(dst, rhs []V4) {
	if len(dst) != len(rhs) {
		panic("vecmath: AddSliceV4 length mismatch")
	}
	floatsAdd(flattenV4(dst), flattenV4(rhs))
}

// AddMulSliceV4 performs dst[i] += rhs[i]*scale in place using FMA. Panics
// if the slices differ in length.
func AddMulSliceV4(dst, rhs []V4, scale float32) {
	if len(dst) != len(rhs) {
		panic("vecmath: AddMulSliceV4 length mismatch")
	}
	floatsAddMul(flattenV4(dst), flattenV4(rhs), scale)
}

// DotSliceV4 computes the aggregate dot product of a and b's flattened
// backing arrays. Uses the shorter of the two slices' lengths.
func DotSliceV4(a, b []V4) float32 {
	return floatsDot(flattenV4(a), flattenV4(b))
}

// SIMDLevel reports the SIMD instruction set the hwy dispatcher selected at
// startup (e.g. "avx2", "neon", "scalar"), for diagnostics/logging.
func SIMDLevel() string { return hwy.CurrentName() }

// SIMDWidthBytes reports the SIMD register width in bytes for the current
// dispatch level.
func SIMDWidthBytes() int { return hwy.CurrentWidth() }
