package poly

import "fmt"

func z2Degree(p []int32) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// Z2Inv computes the inverse of f modulo X^n - 1 by the almost-inverse
// algorithm of the NTRU technical report. The input must have odd parity;
// even-parity inputs have a common factor with the modulus and fail.
func Z2Inv(inv []int32, f []int32, n int) error {
	parity := int32(0)
	for i := 0; i < n; i++ {
		parity ^= f[i]
	}
	if 0 == parity {
		return fmt.Errorf("binary polynomial with even parity is not invertible")
	}

	// Working storage one term wider than the ring for X^n - 1
	fw := make([]int32, n+1)
	g := make([]int32, n+1)
	b := make([]int32, n+1)
	c := make([]int32, n+1)

	copy(fw, f[:n])
	b[0] = 1
	g[0] = 1
	g[n] = 1

	k := 0
	for {
		// f /= X while divisible, c *= X, counting the shifts
		shift := 0
		degF := z2Degree(fw)
		if degF < 0 {
			return fmt.Errorf("binary polynomial is not invertible")
		}
		for shift <= degF && 0 == fw[shift] {
			shift++
		}
		if shift > 0 {
			copy(fw, fw[shift:])
			for i := len(fw) - shift; i < len(fw); i++ {
				fw[i] = 0
			}
			degF -= shift

			degC := z2Degree(c)
			for i := degC; i >= 0; i-- {
				c[i+shift] = c[i]
			}
			for i := 0; i < shift; i++ {
				c[i] = 0
			}

			k += shift
		}

		// f(X) == 1 completes the inversion
		if 0 == degF {
			break
		}

		if degF < z2Degree(g) {
			fw, g = g, fw
			b, c = c, b
			degF = z2Degree(fw)
		}

		degG := z2Degree(g)
		for i := 0; i <= degG; i++ {
			fw[i] ^= g[i]
		}
		degC := z2Degree(c)
		for i := 0; i <= degC; i++ {
			b[i] ^= c[i]
		}
	}

	// inv = X^(n-k) * b, i.e. b rotated left by k positions
	for k >= n {
		k -= n
	}
	j := 0
	for i := k; i < n; i++ {
		inv[j] = b[i]
		j++
	}
	for i := 0; i < k; i++ {
		inv[j] = b[i]
		j++
	}

	return nil
}

// Z2ExtEuclidean computes the same inverse by the extended Euclidean
// algorithm against X^n - 1, succeeding only when the gcd is one.
func Z2ExtEuclidean(inv []int32, f []int32, n int) error {
	size := n + 1
	r0 := make([]int32, size)
	r1 := make([]int32, size)
	s0 := make([]int32, size)
	s1 := make([]int32, size)
	quo := make([]int32, size)
	rem := make([]int32, size)
	prod := make([]int32, 2*size)

	copy(r0, f[:n])
	r1[0] = 1
	r1[n] = 1
	s0[0] = 1

	for z2Degree(r1) >= 0 {
		if err := Z2Div(quo, rem, size, r0, r1); err != nil {
			return err
		}

		// s2 = s0 + quo * s1
		Z2Mul(prod, size, quo, s1)
		s2 := make([]int32, size)
		for i := 0; i < size; i++ {
			s2[i] = s0[i] ^ prod[i]
		}

		copy(r0, r1)
		copy(r1, rem)
		s0, s1 = s1, s2
	}

	if 0 != z2Degree(r0) || 1 != r0[0] {
		return fmt.Errorf("binary polynomial gcd is not one")
	}

	// Fold the X^n term back onto the constant before returning the result
	copy(inv, s0[:n])
	if s0[n] != 0 {
		inv[0] ^= s0[n]
	}
	return nil
}
