package cat

import (
	"errors"
	"testing"
)

func TestModeSetAndDecode(t *testing.T) {
	frame := CmdMD.Set(BandMain, ModeFM)
	if string(frame) != "MD04;" {
		t.Fatalf("CmdMD.Set() = %q, want %q", frame, "MD04;")
	}

	band, mode, err := CmdMD.Decode([]byte{'M', 'D', '0', '4', ';'})
	if err != nil {
		t.Fatalf("CmdMD.Decode() unexpected error: %v", err)
	}
	if band != BandMain || mode != ModeFM {
		t.Errorf("CmdMD.Decode() = (%v, %v), want (Main, FM)", band, mode)
	}

	if got := string(CmdMD.Read(BandSub)); got != "MD1;" {
		t.Errorf("CmdMD.Read() = %q, want %q", got, "MD1;")
	}

	for _, reply := range []string{"MD0G;", "MD24;", "MD4;", "MD004;"} {
		if _, _, err := CmdMD.Decode([]byte(reply)); err == nil {
			t.Errorf("CmdMD.Decode(%q) expected error", reply)
		}
	}
}

func TestModeCodesRoundTrip(t *testing.T) {
	for code := range modes.names {
		m, err := ParseMode(code.Code())
		if err != nil || m != code {
			t.Errorf("ParseMode(%q) = %v, %v", code.Code(), m, err)
		}
		byName, err := ModeFromName(code.String())
		if err != nil || byName != code {
			t.Errorf("ModeFromName(%q) = %v, %v", code.String(), byName, err)
		}
	}
	if _, err := ParseMode('0'); err == nil {
		t.Error("ParseMode('0') expected error")
	}
	if _, err := ParseMode('G'); err == nil {
		t.Error("ParseMode('G') expected error")
	}
}

func TestEnumDecodeRejectsUnknownCodes(t *testing.T) {
	if _, err := ParseShift('3'); err == nil {
		t.Error("ParseShift('3') expected error")
	}
	if _, err := ParseChannelType('6'); err == nil {
		t.Error("ParseChannelType('6') expected error")
	}
	if _, err := ParseSquelchType('6'); err == nil {
		t.Error("ParseSquelchType('6') expected error")
	}
	if _, err := ParseRxClarifier('2'); err == nil {
		t.Error("ParseRxClarifier('2') expected error")
	}
	if _, err := ParseTxClarifier('2'); err == nil {
		t.Error("ParseTxClarifier('2') expected error")
	}
	if _, err := ParseBand('2'); err == nil {
		t.Error("ParseBand('2') expected error")
	}
	if _, err := ParseToneType('2'); err == nil {
		t.Error("ParseToneType('2') expected error")
	}
	_, err := ParseSquelchType('9')
	if kind, _ := KindOf(err); kind != UnknownCode {
		t.Errorf("KindOf() = %v, want %v", kind, UnknownCode)
	}
}

func TestEnumFromName(t *testing.T) {
	if s, err := ShiftFromName("plus shift"); err != nil || s != ShiftPlus {
		t.Errorf("ShiftFromName() = %v, %v", s, err)
	}
	if c, err := ChannelTypeFromName("Memory"); err != nil || c != ChannelMemory {
		t.Errorf("ChannelTypeFromName() = %v, %v", c, err)
	}
	if q, err := SquelchTypeFromName("DCS"); err != nil || q != SquelchDCS {
		t.Errorf("SquelchTypeFromName() = %v, %v", q, err)
	}
	if r, err := RxClarifierFromName("ON"); err != nil || r != RxClarifierOn {
		t.Errorf("RxClarifierFromName() = %v, %v", r, err)
	}
	if _, err := ModeFromName("SSB"); err == nil {
		t.Error("ModeFromName(SSB) expected error")
	}
}

func TestIDCommand(t *testing.T) {
	if got := string(CmdID.Read()); got != "ID;" {
		t.Errorf("CmdID.Read() = %q, want %q", got, "ID;")
	}

	id, err := CmdID.Decode([]byte("ID0840;"))
	if err != nil {
		t.Fatalf("CmdID.Decode() unexpected error: %v", err)
	}
	if id != FTX1ID {
		t.Errorf("CmdID.Decode() = %d, want %d", id, FTX1ID)
	}
	if err := CmdID.Validate(id); err != nil {
		t.Errorf("CmdID.Validate(%d) unexpected error: %v", id, err)
	}

	err = CmdID.Validate(FTDX10ID)
	var mismatch *IDMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("CmdID.Validate(%d) = %v, want *IDMismatchError", FTDX10ID, err)
	}
	if mismatch.Got != FTDX10ID || mismatch.Want != FTX1ID {
		t.Errorf("mismatch = %+v", mismatch)
	}
	if errors.Is(err, ErrMalformed) {
		t.Error("id mismatch must not be reported as malformed data")
	}

	if _, err := CmdID.Decode([]byte("ID08a0;")); err == nil {
		t.Error("CmdID.Decode() expected error for bad digit")
	}
	if _, err := CmdID.Decode(nil); err == nil {
		t.Error("CmdID.Decode() expected error for empty reply")
	}
}

func TestPowerCommand(t *testing.T) {
	tests := []struct {
		power   uint8
		want    string
		wantErr bool
	}{
		{5, "PC005;", false},
		{50, "PC050;", false},
		{100, "PC100;", false},
		{4, "", true},
		{101, "", true},
		{0, "", true},
	}
	for _, tt := range tests {
		frame, err := CmdPC.Set(tt.power)
		if tt.wantErr {
			if err == nil {
				t.Errorf("CmdPC.Set(%d) expected error", tt.power)
			}
			continue
		}
		if err != nil || string(frame) != tt.want {
			t.Errorf("CmdPC.Set(%d) = %q, %v; want %q", tt.power, frame, err, tt.want)
		}
	}

	if got := string(CmdPC.Read()); got != "PC;" {
		t.Errorf("CmdPC.Read() = %q", got)
	}
	p, err := CmdPC.Decode([]byte("PC255;"))
	if err != nil || p != 255 {
		t.Errorf("CmdPC.Decode(PC255;) = %d, %v", p, err)
	}
	if _, err := CmdPC.Decode([]byte("PC256;")); err == nil {
		t.Error("CmdPC.Decode(PC256;) expected error")
	}
}

func TestTransmitCommand(t *testing.T) {
	if got := string(CmdTX.Set(true)); got != "TX1;" {
		t.Errorf("CmdTX.Set(true) = %q", got)
	}
	if got := string(CmdTX.Set(false)); got != "TX0;" {
		t.Errorf("CmdTX.Set(false) = %q", got)
	}

	tests := []struct {
		reply string
		want  bool
	}{
		{"TX0;", false},
		{"TX1;", true},
		{"TX2;", true},
	}
	for _, tt := range tests {
		got, err := CmdTX.Decode([]byte(tt.reply))
		if err != nil || got != tt.want {
			t.Errorf("CmdTX.Decode(%q) = %v, %v; want %v", tt.reply, got, err, tt.want)
		}
	}
	if _, err := CmdTX.Decode([]byte("TX;")); err == nil {
		t.Error("CmdTX.Decode(TX;) expected error")
	}
}

func TestMemoryReadCommand(t *testing.T) {
	ch := mustMem(t, 1)
	if got := string(CmdMR.Read(ch)); got != "MR00001;" {
		t.Errorf("CmdMR.Read() = %q, want %q", got, "MR00001;")
	}

	mr, err := CmdMR.Decode([]byte("MR00001007000000+000000110000;"))
	if err != nil {
		t.Fatalf("CmdMR.Decode() unexpected error: %v", err)
	}
	if mr.Channel != ch {
		t.Errorf("Channel = %v, want %v", mr.Channel, ch)
	}
	if mr.Frequency.Hz() != 7_000_000 {
		t.Errorf("Frequency = %d, want 7000000", mr.Frequency.Hz())
	}
	if mr.Clarifier.Hz() != 0 {
		t.Errorf("Clarifier = %d, want 0", mr.Clarifier.Hz())
	}
	if mr.Mode != ModeLSB || mr.ChannelType != ChannelMemory || mr.Squelch != SquelchOff || mr.Shift != ShiftSimplex {
		t.Errorf("decoded %v", mr)
	}

	mr, err = CmdMR.Decode([]byte("MR00012145500000-015010411002;"))
	if err != nil {
		t.Fatalf("CmdMR.Decode() unexpected error: %v", err)
	}
	if mr.Frequency.Hz() != 145_500_000 || mr.Clarifier.Hz() != -150 {
		t.Errorf("decoded frequency %d clarifier %d", mr.Frequency.Hz(), mr.Clarifier.Hz())
	}
	if mr.RxClarifier != RxClarifierOn || mr.TxClarifier != TxClarifierOff {
		t.Errorf("decoded clarifier flags %v %v", mr.RxClarifier, mr.TxClarifier)
	}
	if mr.Mode != ModeFM || mr.ChannelType != ChannelMemory || mr.Squelch != SquelchCTCSSEncDec || mr.Shift != ShiftMinus {
		t.Errorf("decoded %v", mr)
	}

	invalid := []string{
		"MR00001007000000+00000011000;",  // short
		"MR00001000000001+000000110000;", // frequency out of range
		"MR00001007000000+999900110000;", // clarifier out of range
		"MR00001007000000+000020110000;", // bad rx clarifier
		"MR00001007000000+000000G10000;", // bad mode
		"MR00001007000000+000000190000;", // bad channel type
		"MR00001007000000+000000117000;", // bad squelch type
		"MR00001007000000+000000110003;", // bad shift
		"MRX0001007000000+000000110000;", // bad channel
		"?;",
	}
	for _, reply := range invalid {
		if _, err := CmdMR.Decode([]byte(reply)); err == nil {
			t.Errorf("CmdMR.Decode(%q) expected error", reply)
		}
	}
}

func TestMemoryWriteMatchesReadLayout(t *testing.T) {
	freq, _ := NewFrequency(433_500_000)
	clar, _ := NewClarifierOffset(-1230)
	want := MemoryRead{
		Channel:     mustMem(t, 42),
		Frequency:   freq,
		Clarifier:   clar,
		RxClarifier: RxClarifierOn,
		TxClarifier: TxClarifierOn,
		Mode:        ModeDataFMN,
		ChannelType: ChannelMemory,
		Squelch:     SquelchDCS,
		Shift:       ShiftPlus,
	}

	frame := CmdMW.Set(want)
	if string(frame) != "MW00042433500000-123011F13001;" {
		t.Fatalf("CmdMW.Set() = %q", frame)
	}

	// An MR reply carries the same parameter layout.
	reply := append([]byte("MR"), frame[2:]...)
	got, err := CmdMR.Decode(reply)
	if err != nil {
		t.Fatalf("CmdMR.Decode() unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}

func TestMemoryTagCommand(t *testing.T) {
	ch := mustMem(t, 5)
	if got := string(CmdMT.Read(ch)); got != "MT00005;" {
		t.Errorf("CmdMT.Read() = %q", got)
	}

	tag, err := CmdMT.Decode([]byte("MT00005REPEATER    ;"))
	if err != nil {
		t.Fatalf("CmdMT.Decode() unexpected error: %v", err)
	}
	if tag != "REPEATER" {
		t.Errorf("CmdMT.Decode() = %q, want %q", tag, "REPEATER")
	}

	tag, err = CmdMT.Decode([]byte("MT00005ABCDEFGHIJKL;"))
	if err != nil || tag != "ABCDEFGHIJKL" {
		t.Errorf("CmdMT.Decode() = %q, %v", tag, err)
	}

	if _, err := CmdMT.Decode([]byte("MT00005SHORT;")); err == nil {
		t.Error("CmdMT.Decode() expected error for short reply")
	}

	frame, err := CmdMT.Set(ch, "HOME")
	if err != nil {
		t.Fatalf("CmdMT.Set() unexpected error: %v", err)
	}
	if string(frame) != "MT00005HOME        ;" {
		t.Errorf("CmdMT.Set() = %q", frame)
	}
	if _, err := CmdMT.Set(ch, "THIRTEEN CHAR"); err == nil {
		t.Error("CmdMT.Set() expected error for long tag")
	}
	if _, err := CmdMT.Set(ch, "A;B"); err == nil {
		t.Error("CmdMT.Set() expected error for terminator in tag")
	}
}

func TestMemoryChannelSelectCommand(t *testing.T) {
	if got := string(CmdMC.Read()); got != "MC;" {
		t.Errorf("CmdMC.Read() = %q", got)
	}
	if got := string(CmdMC.Set(mustPMS(t, 2, PMSLower))); got != "MCP-02L;" {
		t.Errorf("CmdMC.Set() = %q", got)
	}

	reply, err := CmdMC.Decode([]byte("MC000123;"))
	if err != nil {
		t.Fatalf("CmdMC.Decode() unexpected error: %v", err)
	}
	if reply.Band != BandMain || reply.Channel != mustMem(t, 123) {
		t.Errorf("CmdMC.Decode() = %+v", reply)
	}

	reply, err = CmdMC.Decode([]byte("MC1EMGCH;"))
	if err != nil || reply.Band != BandSub || reply.Channel != EmergencyChannel() {
		t.Errorf("CmdMC.Decode() = %+v, %v", reply, err)
	}

	for _, bad := range []string{"MC200001;", "MC0ZZZZZ;", "MC00001;"} {
		if _, err := CmdMC.Decode([]byte(bad)); err == nil {
			t.Errorf("CmdMC.Decode(%q) expected error", bad)
		}
	}
}

func TestToneCommand(t *testing.T) {
	if got := string(CmdCN.Read()); got != "CN;" {
		t.Errorf("CmdCN.Read() = %q", got)
	}

	frame, err := CmdCN.Set(BandMain, ToneCTCSS, 12)
	if err != nil || string(frame) != "CN00012;" {
		t.Errorf("CmdCN.Set() = %q, %v", frame, err)
	}
	frame, err = CmdCN.Set(BandSub, ToneDCS, 103)
	if err != nil || string(frame) != "CN11103;" {
		t.Errorf("CmdCN.Set() = %q, %v", frame, err)
	}
	if _, err := CmdCN.Set(BandMain, ToneCTCSS, 50); err == nil {
		t.Error("CmdCN.Set() expected error for CTCSS code 50")
	}
	if _, err := CmdCN.Set(BandMain, ToneDCS, 104); err == nil {
		t.Error("CmdCN.Set() expected error for DCS code 104")
	}

	reply, err := CmdCN.Decode([]byte("CN00012;"))
	if err != nil {
		t.Fatalf("CmdCN.Decode() unexpected error: %v", err)
	}
	if reply.Band != BandMain || reply.ToneType != ToneCTCSS || reply.Code != 12 {
		t.Errorf("CmdCN.Decode() = %+v", reply)
	}
	if hz, ok := reply.Code.CTCSS(); !ok || hz != 100.0 {
		t.Errorf("CTCSS() = %v, %v; want 100.0", hz, ok)
	}
	if got := reply.String(); got != "Main CTCSS 100.0 Hz" {
		t.Errorf("String() = %q", got)
	}

	reply, err = CmdCN.Decode([]byte("CN01000;"))
	if err != nil {
		t.Fatalf("CmdCN.Decode() unexpected error: %v", err)
	}
	if code, ok := reply.Code.DCS(); !ok || code != 23 {
		t.Errorf("DCS() = %v, %v; want 23", code, ok)
	}

	for _, bad := range []string{"CN20012;", "CN02012;", "CN0012a;", "CN0001;"} {
		if _, err := CmdCN.Decode([]byte(bad)); err == nil {
			t.Errorf("CmdCN.Decode(%q) expected error", bad)
		}
	}
}

func TestModelName(t *testing.T) {
	if got := ModelName(FTX1ID); got != "FTX-1" {
		t.Errorf("ModelName(%d) = %q", FTX1ID, got)
	}
	if got := ModelName(1); got != "unknown" {
		t.Errorf("ModelName(1) = %q", got)
	}
}

func TestCheckTag(t *testing.T) {
	tests := []struct {
		tag      string
		wantKind ErrorKind
		wantErr  bool
	}{
		{"", 0, false},
		{"REPEATER", 0, false},
		{"~!@# 12 ABCD", 0, false},
		{"THIRTEEN CHAR", LengthMismatch, true},
		{"A;B", UnknownCode, true},
		{"Café", UnknownCode, true},
		{"A\tB", UnknownCode, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			err := CheckTag(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckTag(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if kind, _ := KindOf(err); kind != tt.wantKind {
				t.Errorf("CheckTag(%q) kind = %v, want %v", tt.tag, kind, tt.wantKind)
			}
			ch, _ := MemChannel(1)
			if _, setErr := CmdMT.Set(ch, tt.tag); setErr == nil {
				t.Errorf("CmdMT.Set(%q) accepted a tag CheckTag rejects", tt.tag)
			}
		})
	}
}
