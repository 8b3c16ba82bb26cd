//go:build !linux

package headless

import (
	"github.com/pkg/errors"
	"github.com/richinsley/gltechnique/graphics"
)

func NewHeadless(width, height int) (graphics.Context, error) {
	return nil, errors.New("egl headless rendering is not supported on this platform")
}
