package tclbridge

// owned is a batch of values that must stay alive across one list primitive
// call. Build it, pass handles(), then release() once the call returns.
type owned []*Value

func (o owned) handles() []Handle {
	hs := make([]Handle, len(o))
	for i, v := range o {
		hs[i] = v.handle()
	}
	return hs
}

func (o owned) release() {
	for _, v := range o {
		v.Release()
	}
}

// materialize creates one owned value per scalar.
func materialize[T Scalar](ip Interp, xs []T) owned {
	o := make(owned, len(xs))
	for i, x := range xs {
		o[i] = FromScalar(ip, x)
	}
	return o
}

// retainAll takes a fresh reference on each value so the batch can be
// released independently of the caller's values.
func retainAll(ip Interp, vs []*Value) (owned, error) {
	o := make(owned, 0, len(vs))
	for _, v := range vs {
		h := v.handle()
		if h == 0 {
			o.release()
			return nil, nullValue("materialize")
		}
		o = append(o, Wrap(ip, h))
	}
	return o, nil
}
