package entropy

import "errors"

var errNilPacker = errors.New("entropy coding requires a packer")
