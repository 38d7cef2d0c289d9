// file: internals/features/workflow/units/repository/unit_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/helpers/apperror"
)

// UnitStore adalah satu-satunya pintu tulis ke content_units/content_unit_slots.
// Semua operasi tulis berjalan dalam satu transaksi per unit (atau per batch claim).
type UnitStore struct {
	DB *gorm.DB
}

func NewUnitStore(db *gorm.DB) *UnitStore {
	return &UnitStore{DB: db}
}

// DateWindow: filter overlap terhadap from_date..to_date unit.
type DateWindow struct {
	From *time.Time
	To   *time.Time
}

// NewUnit: input ingestion (seeder / endpoint uploader).
type NewUnit struct {
	ID        uint
	Kind      model.ContentKind
	FromDate  *time.Time
	ToDate    *time.Time
	Sign      *string
	SourceRef *string
	Content   map[model.Language]string
	Names     map[model.Language]string
	Actor     string
}

// ClaimRequest: klaim atomik unit yang belum di-assign.
type ClaimRequest struct {
	Kind     model.ContentKind
	Username string
	Count    int
	Language *model.Language
	Actor    string
}

/* ===============================
   Reads
=================================*/

func (s *UnitStore) Find(ctx context.Context, kind model.ContentKind, id uint) (*model.ContentUnitModel, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, kind)
	}
	return findUnit(s.DB.WithContext(ctx), kind, id, false)
}

// FindUnassigned: assigned_to IS NULL, urut id ASC, dibatasi limit.
func (s *UnitStore) FindUnassigned(ctx context.Context, kind model.ContentKind, limit int) ([]model.ContentUnitModel, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, kind)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be > 0", apperror.ErrValidation)
	}
	var units []model.ContentUnitModel
	err := withSlots(s.DB.WithContext(ctx)).
		Where("content_unit_kind = ? AND content_unit_assigned_to IS NULL", kind).
		Order("content_unit_id ASC").
		Limit(limit).
		Find(&units).Error
	if err != nil {
		return nil, apperror.Store("find unassigned", err)
	}
	return units, nil
}

// FindByStatus: unit dengan status[lang] == status, opsional filter tanggal.
func (s *UnitStore) FindByStatus(ctx context.Context, kind model.ContentKind, lang model.Language, status model.SlotStatus, window DateWindow) ([]model.ContentUnitModel, error) {
	if err := validateKindLang(kind, lang); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidStatus, status)
	}

	q := withSlots(s.DB.WithContext(ctx)).
		Where("content_unit_kind = ?", kind).
		Where(`EXISTS (SELECT 1 FROM content_unit_slots s
			WHERE s.unit_slot_unit_id = content_units.content_unit_id
			  AND s.unit_slot_language = ? AND s.unit_slot_status = ?)`, lang, status)
	q = applyWindow(q, window)

	var units []model.ContentUnitModel
	if err := q.Order("content_unit_from_date ASC, content_unit_id ASC").Find(&units).Error; err != nil {
		return nil, apperror.Store("find by status", err)
	}
	return units, nil
}

// FindAssignedTo: antrean milik worker. Dengan lang, hanya slot yang belum masuk review.
func (s *UnitStore) FindAssignedTo(ctx context.Context, kind model.ContentKind, username string, lang *model.Language) ([]model.ContentUnitModel, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, kind)
	}
	q := withSlots(s.DB.WithContext(ctx)).
		Where("content_unit_kind = ? AND content_unit_assigned_to = ?", kind, username)
	if lang != nil {
		q = q.Where(`EXISTS (SELECT 1 FROM content_unit_slots s
			WHERE s.unit_slot_unit_id = content_units.content_unit_id
			  AND s.unit_slot_language = ? AND s.unit_slot_status IN ?)`,
			*lang, []model.SlotStatus{model.StatusPending, model.StatusWorking})
	}
	var units []model.ContentUnitModel
	if err := q.Order("content_unit_id ASC").Find(&units).Error; err != nil {
		return nil, apperror.Store("find assigned", err)
	}
	return units, nil
}

// LoadCandidates: unit yang punya isi ATAU nama untuk bahasa tsb (antrean koreksi).
// date (opsional) harus berada di dalam from_date..to_date.
func (s *UnitStore) LoadCandidates(ctx context.Context, kind model.ContentKind, lang model.Language, date *time.Time) ([]model.ContentUnitModel, error) {
	if err := validateKindLang(kind, lang); err != nil {
		return nil, err
	}
	q := withSlots(s.DB.WithContext(ctx)).
		Where("content_unit_kind = ?", kind).
		Where(`EXISTS (SELECT 1 FROM content_unit_slots s
			WHERE s.unit_slot_unit_id = content_units.content_unit_id
			  AND s.unit_slot_language = ?
			  AND (s.unit_slot_content <> '' OR s.unit_slot_name <> ''))`, lang)
	if date != nil {
		d := truncateDay(*date)
		q = q.Where("content_unit_from_date <= ? AND content_unit_to_date >= ?", d, d)
	}

	var units []model.ContentUnitModel
	if err := q.Order("content_unit_id ASC").Find(&units).Error; err != nil {
		return nil, apperror.Store("load candidates", err)
	}
	return units, nil
}

// History: jurnal transisi, terbaru dulu.
func (s *UnitStore) History(ctx context.Context, kind model.ContentKind, id uint) ([]model.ContentUnitEventModel, error) {
	if _, err := s.Find(ctx, kind, id); err != nil {
		return nil, err
	}
	var events []model.ContentUnitEventModel
	if err := s.DB.WithContext(ctx).
		Where("unit_event_unit_id = ?", id).
		Order("unit_event_id DESC").
		Find(&events).Error; err != nil {
		return nil, apperror.Store("history", err)
	}
	return events, nil
}

/* ===============================
   Writes
=================================*/

// Create: semua slot dibuat pending, assigned_to NULL.
func (s *UnitStore) Create(ctx context.Context, in NewUnit) (*model.ContentUnitModel, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, in.Kind)
	}
	for lang := range in.Content {
		if !lang.Valid() {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, lang)
		}
	}
	for lang, name := range in.Names {
		if !lang.Valid() {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, lang)
		}
		if strings.TrimSpace(name) != "" && !in.Kind.HasName() {
			return nil, fmt.Errorf("%w: name.%s not available for %s", apperror.ErrInvalidField, lang, in.Kind)
		}
	}
	if in.FromDate != nil && in.ToDate == nil {
		in.ToDate = in.FromDate
	}
	if in.FromDate != nil && in.ToDate != nil && in.ToDate.Before(*in.FromDate) {
		return nil, fmt.Errorf("%w: to_date before from_date", apperror.ErrValidation)
	}

	slots := make([]model.ContentUnitSlotModel, 0, len(model.AllLanguages))
	for _, lang := range model.AllLanguages {
		slots = append(slots, model.ContentUnitSlotModel{
			UnitSlotLanguage: lang,
			UnitSlotContent:  strings.TrimSpace(in.Content[lang]),
			UnitSlotName:     strings.TrimSpace(in.Names[lang]),
			UnitSlotStatus:   model.StatusPending,
		})
	}

	unit := model.ContentUnitModel{
		ContentUnitID:            in.ID,
		ContentUnitKind:          in.Kind,
		ContentUnitWorkStatus:    model.WorkUnassigned,
		ContentUnitOverallStatus: model.DeriveOverallStatus(in.Kind, slots),
		ContentUnitFromDate:      dayPtr(in.FromDate),
		ContentUnitToDate:        dayPtr(in.ToDate),
		ContentUnitSign:          in.Sign,
		ContentUnitSourceRef:     in.SourceRef,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Slots").Create(&unit).Error; err != nil {
			return apperror.Store("create unit", err)
		}
		for i := range slots {
			slots[i].UnitSlotUnitID = unit.ContentUnitID
		}
		if err := tx.Create(&slots).Error; err != nil {
			return apperror.Store("create slots", err)
		}
		ev := model.ContentUnitEventModel{
			UnitEventUnitID: unit.ContentUnitID,
			UnitEventKind:   in.Kind,
			UnitEventAction: model.ActionCreate,
			UnitEventActor:  actorOrSystem(in.Actor),
		}
		if err := tx.Create(&ev).Error; err != nil {
			return apperror.Store("journal", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	unit.Slots = slots
	return &unit, nil
}

// UpdateFields: update(id, partialFields) dengan allow-list nama field.
func (s *UnitStore) UpdateFields(ctx context.Context, kind model.ContentKind, id uint, fields map[string]any, actor string) (*model.ContentUnitModel, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, kind)
	}
	upd, err := ParseFields(kind, fields)
	if err != nil {
		return nil, err
	}
	upd.Event = &EventDraft{Action: model.ActionPatch, Actor: actor, Payload: map[string]any{"fields": fieldNames(fields)}}
	return s.Update(ctx, kind, id, upd)
}

// Update menerapkan UnitUpdate dalam satu transaksi (row unit dikunci),
// lalu menghitung ulang overall_status dari isi slot terbaru.
func (s *UnitStore) Update(ctx context.Context, kind model.ContentKind, id uint, upd UnitUpdate) (*model.ContentUnitModel, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, kind)
	}
	if upd.isEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", apperror.ErrInvalidField)
	}
	if err := validateUpdate(kind, upd); err != nil {
		return nil, err
	}

	var out *model.ContentUnitModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		unit, err := findUnit(tx, kind, id, true)
		if err != nil {
			return err
		}
		out, err = applyUpdate(tx, unit, upd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClaimUnassigned mengklaim maksimal Count unit dengan SATU UPDATE bersyarat
// (subquery id + recheck assigned_to IS NULL). Baris yang terklaim ditandai
// assignment_batch lalu dibaca ulang dalam transaksi yang sama, sehingga dua
// pemanggilan paralel tidak pernah mendapat unit yang sama.
func (s *UnitStore) ClaimUnassigned(ctx context.Context, req ClaimRequest) ([]model.ContentUnitModel, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, req.Kind)
	}
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be > 0", apperror.ErrValidation)
	}
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username required", apperror.ErrValidation)
	}
	if req.Language != nil && !req.Language.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, *req.Language)
	}

	batch := uuid.New()
	now := time.Now().UTC()
	var claimed []model.ContentUnitModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pool := tx.Model(&model.ContentUnitModel{}).
			Select("content_unit_id").
			Where("content_unit_kind = ? AND content_unit_assigned_to IS NULL", req.Kind)
		if req.Language != nil {
			pool = pool.Where(`EXISTS (SELECT 1 FROM content_unit_slots s
				WHERE s.unit_slot_unit_id = content_units.content_unit_id
				  AND s.unit_slot_language = ? AND s.unit_slot_status = ?)`, *req.Language, model.StatusPending)
		}
		pool = pool.Order("content_unit_id ASC").Limit(req.Count)
		if tx.Dialector.Name() == "postgres" {
			pool = pool.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}

		res := tx.Model(&model.ContentUnitModel{}).
			Where("content_unit_id IN (?)", pool).
			Where("content_unit_assigned_to IS NULL").
			Updates(map[string]any{
				"content_unit_assigned_to":      req.Username,
				"content_unit_assignment_batch": batch,
				"content_unit_assigned_at":      now,
				"content_unit_work_status":      string(model.WorkWorking),
			})
		if res.Error != nil {
			return apperror.Store("claim units", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: no unassigned %s units", apperror.ErrNoWorkAvailable, req.Kind)
		}

		var ids []uint
		if err := tx.Model(&model.ContentUnitModel{}).
			Where("content_unit_assignment_batch = ?", batch).
			Order("content_unit_id ASC").
			Pluck("content_unit_id", &ids).Error; err != nil {
			return apperror.Store("read claimed units", err)
		}

		events := make([]model.ContentUnitEventModel, 0, len(ids))
		var lang *string
		if req.Language != nil {
			l := string(*req.Language)
			lang = &l
			// slot bahasa target: pending -> working
			if err := tx.Model(&model.ContentUnitSlotModel{}).
				Where("unit_slot_unit_id IN ? AND unit_slot_language = ? AND unit_slot_status = ?", ids, *req.Language, model.StatusPending).
				Update("unit_slot_status", model.StatusWorking).Error; err != nil {
				return apperror.Store("mark slots working", err)
			}
		}
		for _, id := range ids {
			ev := model.ContentUnitEventModel{
				UnitEventUnitID:   id,
				UnitEventKind:     req.Kind,
				UnitEventAction:   model.ActionAssign,
				UnitEventLanguage: lang,
				UnitEventActor:    actorOrSystem(req.Actor),
				UnitEventPayload: datatypes.JSONMap{
					"assigned_to": req.Username,
					"batch":       batch.String(),
				},
			}
			if lang != nil {
				from, to := string(model.StatusPending), string(model.StatusWorking)
				ev.UnitEventFromStatus, ev.UnitEventToStatus = &from, &to
			}
			events = append(events, ev)
		}
		if err := tx.Create(&events).Error; err != nil {
			return apperror.Store("journal", err)
		}

		if err := withSlots(tx).
			Where("content_unit_id IN ?", ids).
			Order("content_unit_id ASC").
			Find(&claimed).Error; err != nil {
			return apperror.Store("load claimed units", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

/* ===============================
   Internal helpers
=================================*/

func withSlots(db *gorm.DB) *gorm.DB {
	return db.Preload("Slots", func(q *gorm.DB) *gorm.DB {
		return q.Order("unit_slot_id ASC")
	})
}

// findUnit: lock=true -> SELECT ... FOR UPDATE (diabaikan oleh sqlite).
func findUnit(db *gorm.DB, kind model.ContentKind, id uint, lock bool) (*model.ContentUnitModel, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: unit id required", apperror.ErrValidation)
	}
	q := db
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var unit model.ContentUnitModel
	if err := q.Where("content_unit_id = ? AND content_unit_kind = ?", id, kind).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s unit %d", apperror.ErrNotFound, kind, id)
		}
		return nil, apperror.Store("find unit", err)
	}
	if err := db.Where("unit_slot_unit_id = ?", id).Order("unit_slot_id ASC").Find(&unit.Slots).Error; err != nil {
		return nil, apperror.Store("find slots", err)
	}
	return &unit, nil
}

func validateKindLang(kind model.ContentKind, lang model.Language) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidKind, kind)
	}
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, lang)
	}
	return nil
}

func validateUpdate(kind model.ContentKind, upd UnitUpdate) error {
	if upd.AssignedTo != nil && upd.ClearAssignee {
		return fmt.Errorf("%w: assigned_to set and cleared at once", apperror.ErrInvalidField)
	}
	if upd.WorkStatus != nil && !upd.WorkStatus.Valid() {
		return fmt.Errorf("%w: work_status %q", apperror.ErrInvalidStatus, *upd.WorkStatus)
	}
	for lang, su := range upd.Slots {
		if !lang.Valid() {
			return fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, lang)
		}
		if su.Status != nil && !su.Status.Valid() {
			return fmt.Errorf("%w: %q", apperror.ErrInvalidStatus, *su.Status)
		}
		if su.Name != nil && !kind.HasName() {
			return fmt.Errorf("%w: name.%s not available for %s", apperror.ErrInvalidField, lang, kind)
		}
	}
	return nil
}

func applyUpdate(tx *gorm.DB, unit *model.ContentUnitModel, upd UnitUpdate) (*model.ContentUnitModel, error) {
	kind := unit.ContentUnitKind
	cols := map[string]any{}

	if upd.ClearAssignee {
		cols["content_unit_assigned_to"] = nil
		cols["content_unit_assignment_batch"] = nil
		cols["content_unit_assigned_at"] = nil
	}
	if upd.AssignedTo != nil {
		cols["content_unit_assigned_to"] = *upd.AssignedTo
		cols["content_unit_assigned_at"] = time.Now().UTC()
	}
	if upd.WorkStatus != nil {
		cols["content_unit_work_status"] = string(*upd.WorkStatus)
	}
	if upd.SourceRef != nil {
		cols["content_unit_source_ref"] = nullIfEmpty(*upd.SourceRef)
	}
	if upd.Sign != nil {
		cols["content_unit_sign"] = nullIfEmpty(*upd.Sign)
	}

	var events []model.ContentUnitEventModel
	for _, lang := range model.AllLanguages {
		su, ok := upd.Slots[lang]
		if !ok {
			continue
		}
		slot := unit.Slot(lang)
		if slot == nil {
			created := model.ContentUnitSlotModel{
				UnitSlotUnitID:   unit.ContentUnitID,
				UnitSlotLanguage: lang,
				UnitSlotStatus:   model.StatusPending,
			}
			if err := tx.Create(&created).Error; err != nil {
				return nil, apperror.Store("create slot", err)
			}
			unit.Slots = append(unit.Slots, created)
			slot = unit.Slot(lang)
		}

		slotCols := map[string]any{}
		if su.Content != nil {
			slotCols["unit_slot_content"] = *su.Content
		}
		if su.Name != nil {
			slotCols["unit_slot_name"] = *su.Name
		}
		from := slot.UnitSlotStatus
		to := from
		if su.Status != nil {
			to = *su.Status
			slotCols["unit_slot_status"] = to
		}
		if len(slotCols) > 0 {
			if err := tx.Model(&model.ContentUnitSlotModel{}).
				Where("unit_slot_id = ?", slot.UnitSlotID).
				Updates(slotCols).Error; err != nil {
				return nil, apperror.Store("update slot", err)
			}
		}
		if upd.Event != nil {
			l, f, t := string(lang), string(from), string(to)
			events = append(events, newEvent(unit, upd.Event, &l, &f, &t))
		}
	}

	var slots []model.ContentUnitSlotModel
	if err := tx.Where("unit_slot_unit_id = ?", unit.ContentUnitID).Find(&slots).Error; err != nil {
		return nil, apperror.Store("reload slots", err)
	}
	cols["content_unit_overall_status"] = string(model.DeriveOverallStatus(kind, slots))

	if err := tx.Model(&model.ContentUnitModel{}).
		Where("content_unit_id = ?", unit.ContentUnitID).
		Updates(cols).Error; err != nil {
		return nil, apperror.Store("update unit", err)
	}

	if upd.Event != nil && len(events) == 0 {
		var l *string
		if upd.Event.Language != nil {
			v := string(*upd.Event.Language)
			l = &v
		}
		events = append(events, newEvent(unit, upd.Event, l, nil, nil))
	}
	if len(events) > 0 {
		if err := tx.Create(&events).Error; err != nil {
			return nil, apperror.Store("journal", err)
		}
	}

	return findUnit(tx, kind, unit.ContentUnitID, false)
}

func newEvent(unit *model.ContentUnitModel, d *EventDraft, lang, from, to *string) model.ContentUnitEventModel {
	ev := model.ContentUnitEventModel{
		UnitEventUnitID:     unit.ContentUnitID,
		UnitEventKind:       unit.ContentUnitKind,
		UnitEventAction:     d.Action,
		UnitEventLanguage:   lang,
		UnitEventFromStatus: from,
		UnitEventToStatus:   to,
		UnitEventActor:      actorOrSystem(d.Actor),
	}
	if len(d.Payload) > 0 {
		ev.UnitEventPayload = datatypes.JSONMap(d.Payload)
	}
	return ev
}

func applyWindow(q *gorm.DB, w DateWindow) *gorm.DB {
	if w.From != nil {
		q = q.Where("content_unit_to_date >= ?", truncateDay(*w.From))
	}
	if w.To != nil {
		q = q.Where("content_unit_from_date <= ?", truncateDay(*w.To))
	}
	return q
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := truncateDay(*t)
	return &d
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func actorOrSystem(actor string) string {
	if strings.TrimSpace(actor) == "" {
		return "system"
	}
	return actor
}

func fieldNames(fields map[string]any) []string {
	out := make([]string, 0, len(fields))
	for k := range fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Release mengosongkan assigned_to sehingga unit kembali ke pool.
// Status per bahasa tidak diubah.
func (s *UnitStore) Release(ctx context.Context, kind model.ContentKind, id uint, actor string) (*model.ContentUnitModel, error) {
	ws := model.WorkUnassigned
	return s.Update(ctx, kind, id, UnitUpdate{
		ClearAssignee: true,
		WorkStatus:    &ws,
		Event:         &EventDraft{Action: model.ActionRelease, Actor: actor},
	})
}
