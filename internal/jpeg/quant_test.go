package jpeg

import "testing"

func TestScaleQuantTable(t *testing.T) {
	q50 := ScaleQuantTable(stdLuminanceQuant, 50)
	for i := range q50 {
		if int(q50[i]) != stdLuminanceQuant[i] {
			t.Fatalf("quality 50 entry %d = %d, want base %d", i, q50[i], stdLuminanceQuant[i])
		}
	}

	q100 := ScaleQuantTable(stdLuminanceQuant, 100)
	for i, v := range q100 {
		if v != 1 {
			t.Fatalf("quality 100 entry %d = %d, want 1", i, v)
		}
	}

	if ScaleQuantTable(stdLuminanceQuant, 0) != ScaleQuantTable(stdLuminanceQuant, 1) {
		t.Error("quality 0 should scale like quality 1")
	}

	q1 := ScaleQuantTable(stdChrominanceQuant, 1)
	for i, v := range q1 {
		if v > 255 {
			t.Fatalf("quality 1 entry %d = %d exceeds baseline limit", i, v)
		}
	}
}

func TestGenerateQuantTables_Quality95(t *testing.T) {
	luma, chroma := GenerateQuantTables(95)
	// scale = 200 - 2*95 = 10 → (16*10+50)/100 = 2, (17*10+50)/100 = 2, (99*10+50)/100 = 10
	if luma[0] != 2 {
		t.Errorf("luma[0] = %d, want 2", luma[0])
	}
	if chroma[0] != 2 {
		t.Errorf("chroma[0] = %d, want 2", chroma[0])
	}
	if chroma[63] != 10 {
		t.Errorf("chroma[63] = %d, want 10", chroma[63])
	}
}
