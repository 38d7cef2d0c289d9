package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"bhashaflow_backend/internals/helpers/apperror"
)

/* ===============================
   Content kind
=================================*/

type ContentKind string

const (
	KindActivity ContentKind = "activity"
	KindDaily    ContentKind = "daily"
	KindTenDay   ContentKind = "tenday"
)

var AllKinds = []ContentKind{KindActivity, KindDaily, KindTenDay}

// ParseKind menerima juga alias lama dari dashboard (daily_prediction, ten_day, ...).
func ParseKind(s string) (ContentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activity", "activities":
		return KindActivity, nil
	case "daily", "daily_prediction", "daily-prediction":
		return KindDaily, nil
	case "tenday", "ten_day", "ten-day", "tenday_prediction", "ten_day_prediction":
		return KindTenDay, nil
	}
	return "", fmt.Errorf("%w: %q", apperror.ErrInvalidKind, s)
}

func (k ContentKind) Valid() bool {
	switch k {
	case KindActivity, KindDaily, KindTenDay:
		return true
	}
	return false
}

// HasName: hanya activity punya judul terjemahan terpisah dari isi.
func (k ContentKind) HasName() bool { return k == KindActivity }

func (k ContentKind) Value() (driver.Value, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, string(k))
	}
	return string(k), nil
}

func (k *ContentKind) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	parsed := ContentKind(v)
	if !parsed.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidKind, v)
	}
	*k = parsed
	return nil
}

/* ===============================
   Language
=================================*/

type Language string

const (
	LangEnglish  Language = "en"
	LangHindi    Language = "hi"
	LangMarathi  Language = "mr"
	LangGujarati Language = "gu"
	LangBengali  Language = "bn"
	LangTelugu   Language = "te"
)

// AllLanguages urutannya tetap; dipakai untuk membuat slot saat unit dibuat.
var AllLanguages = []Language{LangEnglish, LangHindi, LangMarathi, LangGujarati, LangBengali, LangTelugu}

func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	// kembalikan konstanta, bukan string input (bisa menunjuk buffer request)
	for _, known := range AllLanguages {
		if l == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, s)
}

func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangHindi, LangMarathi, LangGujarati, LangBengali, LangTelugu:
		return true
	}
	return false
}

func (l Language) Value() (driver.Value, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, string(l))
	}
	return string(l), nil
}

func (l *Language) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	parsed := Language(v)
	if !parsed.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, v)
	}
	*l = parsed
	return nil
}

/* ===============================
   Slot status (per language)
=================================*/

type SlotStatus string

const (
	StatusPending  SlotStatus = "pending"
	StatusWorking  SlotStatus = "working"
	StatusInReview SlotStatus = "inreview"
	StatusApproved SlotStatus = "approved"
)

var AllSlotStatuses = []SlotStatus{StatusPending, StatusWorking, StatusInReview, StatusApproved}

func ParseSlotStatus(s string) (SlotStatus, error) {
	st := SlotStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidStatus, s)
	}
	return st, nil
}

func (s SlotStatus) Valid() bool {
	switch s {
	case StatusPending, StatusWorking, StatusInReview, StatusApproved:
		return true
	}
	return false
}

func (s SlotStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidStatus, string(s))
	}
	return string(s), nil
}

func (s *SlotStatus) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	parsed := SlotStatus(v)
	if !parsed.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidStatus, v)
	}
	*s = parsed
	return nil
}

/* ===============================
   Overall (derived) & coarse work status
=================================*/

// OverallStatus hanya label tampilan; tidak pernah dipakai sebagai status review.
type OverallStatus string

const (
	OverallPending   OverallStatus = "pending"
	OverallWorking   OverallStatus = "working"
	OverallCompleted OverallStatus = "completed"
)

var AllOverallStatuses = []OverallStatus{OverallPending, OverallWorking, OverallCompleted}

type WorkStatus string

const (
	WorkUnassigned WorkStatus = "unassigned"
	WorkWorking    WorkStatus = "working"
)

func (w WorkStatus) Valid() bool { return w == WorkUnassigned || w == WorkWorking }

/* ===============================
   Review decision
=================================*/

type Decision string

const (
	DecisionApprove  Decision = "approve"
	DecisionReassign Decision = "reassign"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(s))) {
	case DecisionApprove:
		return DecisionApprove, nil
	case DecisionReassign:
		return DecisionReassign, nil
	}
	return "", fmt.Errorf("%w: %q", apperror.ErrInvalidDecision, s)
}

// Target: approve -> approved, reassign -> working (kembali ke penerjemah).
func (d Decision) Target() SlotStatus {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusWorking
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("%w: null enum value", apperror.ErrValidation)
	default:
		return "", fmt.Errorf("%w: unsupported enum source %T", apperror.ErrValidation, src)
	}
}
