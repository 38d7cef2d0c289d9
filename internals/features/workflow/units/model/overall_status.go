package model

// DeriveOverallStatus menghitung label agregat murni dari isi slot:
//   - pending   : belum ada isi/nama sama sekali
//   - completed : semua bahasa terisi (isi, dan nama untuk activity)
//   - working   : selain itu
//
// Urutan slot tidak berpengaruh.
func DeriveOverallStatus(kind ContentKind, slots []ContentUnitSlotModel) OverallStatus {
	byLang := make(map[Language]ContentUnitSlotModel, len(slots))
	for _, s := range slots {
		byLang[s.UnitSlotLanguage] = s
	}

	anyFilled := false
	allFilled := true
	for _, lang := range AllLanguages {
		s, ok := byLang[lang]
		if ok && (s.HasContent() || s.HasName()) {
			anyFilled = true
		}
		if !ok || !s.HasContent() || (kind.HasName() && !s.HasName()) {
			allFilled = false
		}
	}

	switch {
	case !anyFilled:
		return OverallPending
	case allFilled:
		return OverallCompleted
	default:
		return OverallWorking
	}
}
