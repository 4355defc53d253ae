package session

import (
	"strings"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
)

// defaultTabletMinWidth separates tablets from phones among touch devices.
const defaultTabletMinWidth = 768

var (
	tabletAgents = []string{"ipad", "tablet"}
	mobileAgents = []string{"iphone", "ipod", "android", "mobile", "windows phone"}
)

// DetectDevice classifies the host. User-agent substrings take precedence;
// otherwise touch capability plus viewport width decides, and anything
// without touch is a desktop.
func DetectDevice(env dom.Environment, tabletMinWidth int) model.DeviceType {
	if tabletMinWidth <= 0 {
		tabletMinWidth = defaultTabletMinWidth
	}
	ua := strings.ToLower(env.UserAgent())

	for _, s := range tabletAgents {
		if strings.Contains(ua, s) {
			return model.DeviceTablet
		}
	}
	for _, s := range mobileAgents {
		if strings.Contains(ua, s) {
			return model.DeviceMobile
		}
	}

	if env.TouchCapable() {
		if env.ViewportWidth() >= tabletMinWidth {
			return model.DeviceTablet
		}
		return model.DeviceMobile
	}

	return model.DeviceDesktop
}

// pointerFor picks the motion device label matching the host capabilities.
func pointerFor(env dom.Environment) model.PointerDevice {
	if env.TouchCapable() {
		return model.DeviceTouch
	}
	return model.DeviceMouse
}
