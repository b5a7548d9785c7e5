package cat

import "fmt"

// CTCSSTones lists the CTCSS tone frequencies in Hz, indexed by tone code.
var CTCSSTones = [50]float32{
	67.0, 69.3, 71.9, 74.4, 77.0, 79.7, 82.5, 85.4, 88.5,
	91.5, 94.8, 97.4, 100.0, 103.5, 107.2, 110.9, 114.8, 118.8,
	123.0, 127.3, 131.8, 136.5, 141.3, 146.2, 151.4, 156.7, 159.8,
	162.2, 165.5, 167.9, 171.3, 173.8, 177.3, 179.9, 183.5, 186.2,
	189.9, 192.8, 196.6, 199.5, 203.5, 206.5, 210.7, 218.1, 225.7,
	229.1, 233.6, 241.8, 250.3, 254.1,
}

// DCSCodes lists the DCS codes, indexed by tone code.
var DCSCodes = [104]uint16{
	23, 25, 26, 31, 32, 36, 43, 47, 51, 53, 54, 65, 71, 72, 73,
	74, 114, 115, 116, 122, 125, 131, 132, 134, 143, 145, 152,
	155, 156, 162, 165, 172, 174, 205, 212, 223, 225, 226, 243,
	244, 245, 246, 251, 252, 255, 261, 263, 265, 266, 271, 274,
	306, 311, 315, 325, 331, 332, 343, 346, 351, 356, 364, 365,
	371, 411, 412, 413, 423, 431, 432, 445, 446, 452, 454, 455,
	462, 464, 465, 466, 503, 506, 516, 523, 526, 532, 546, 565,
	606, 612, 624, 627, 631, 632, 654, 662, 664, 703, 712, 723,
	731, 732, 734, 743, 754,
}

// ToneCode is the 3-digit index the CN command carries.
type ToneCode uint8

// CTCSS returns the tone frequency for a CTCSS code.
func (c ToneCode) CTCSS() (float32, bool) {
	if int(c) >= len(CTCSSTones) {
		return 0, false
	}
	return CTCSSTones[c], true
}

// DCS returns the DCS code for a DCS index.
func (c ToneCode) DCS() (uint16, bool) {
	if int(c) >= len(DCSCodes) {
		return 0, false
	}
	return DCSCodes[c], true
}

// Describe renders the code as a tone or DCS value for the given tone type.
func (c ToneCode) Describe(t ToneType) string {
	switch t {
	case ToneCTCSS:
		if hz, ok := c.CTCSS(); ok {
			return fmt.Sprintf("%.1f Hz", hz)
		}
	case ToneDCS:
		if code, ok := c.DCS(); ok {
			return fmt.Sprintf("D%03d", code)
		}
	}
	return fmt.Sprintf("code %03d", uint8(c))
}

func checkToneCode(t ToneType, c ToneCode) error {
	limit := len(CTCSSTones)
	if t == ToneDCS {
		limit = len(DCSCodes)
	}
	if int(c) >= limit {
		return newError(OutOfRange, "tone code", "%d for %s", c, t)
	}
	return nil
}

//------------------------------------
// Radio identification
//------------------------------------

// Radio ids returned by the ID command.
const (
	FTDX5000ID  uint16 = 362
	FT991AID    uint16 = 670
	FTDX101DID  uint16 = 681
	FTDX101MPID uint16 = 682
	FTDX10ID    uint16 = 761
	FTX1ID      uint16 = 840
)

// KnownModels maps identification replies to model names.
var KnownModels = map[uint16]string{
	FTDX5000ID:  "FTDX5000",
	FT991AID:    "FT-991A",
	FTDX101DID:  "FTDX101D",
	FTDX101MPID: "FTDX101MP",
	FTDX10ID:    "FTDX10",
	FTX1ID:      "FTX-1",
}

// ModelName returns the model for id, or "unknown".
func ModelName(id uint16) string {
	if name, ok := KnownModels[id]; ok {
		return name
	}
	return "unknown"
}
