package mpz

// CRT combines the multi-precision residue a (mod aM) with the single-limb
// residue b (mod bm.M) into the representative of smallest absolute value.
// mInv is the inverse of aM modulo bm.M, and abM is the product aM * bm.M;
// temp provides scratch storage.
func CRT(result, a, aM *Int, b uint64, bm *BarrettMod, mInv uint64, abM, temp *Int) {
	// s = (b - (a mod bm)) * mInv (mod bm)
	temp.Copy(a)
	if a.Sign() < 0 {
		temp.Add(temp, aM)
	}

	a1, _ := ModUI(temp, bm.M)
	s := bm.SubMod(bm.Red(b), a1)
	s = bm.MulMod(s, mInv)

	// t = a + aM * s, minimized against t - abM
	temp.AddMulUI(aM, s)

	result.Sub(temp, abM)
	if temp.CmpAbs(result) <= 0 {
		result.Copy(temp)
	}
}

// GetUIMod returns a mod mod.M as a non-negative limb residue.
func GetUIMod(a *Int, mod *BarrettMod) uint64 {
	r, _ := ModUI(a, mod.M)
	return r
}

// MaxBits folds the top limb of in into mask, tracking the largest limb
// count seen across a polynomial's coefficients.
func MaxBits(in *Int, mask *uint64, maxLimbs *int) {
	limbs := abs(in.used)
	if 0 == limbs {
		return
	}
	switch {
	case limbs == *maxLimbs:
		*mask |= in.limbs[limbs-1]
	case limbs > *maxLimbs:
		*mask = in.limbs[limbs-1]
		*maxLimbs = limbs
	}
}
