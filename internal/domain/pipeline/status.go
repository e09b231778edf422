package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Flags las siete etapas indexadas por Stage.
type Flags [StageCount]bool

// Status estado general derivado; nunca se persiste.
type Status string

const (
	StatusStarted    Status = "started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Label texto en portugués usado en el panel y en el portal.
func (s Status) Label() string {
	switch s {
	case StatusStarted:
		return "Iniciada"
	case StatusInProgress:
		return "Em Andamento"
	case StatusCompleted:
		return "Concluída"
	}
	return ""
}

// ParseStatus acepta el código ("in_progress") o los valores del filtro del panel ("andamento").
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "started", "iniciada":
		return StatusStarted, true
	case "in_progress", "andamento", "em andamento":
		return StatusInProgress, true
	case "completed", "concluida", "concluída":
		return StatusCompleted, true
	}
	return "", false
}

// Count cantidad de etapas completas.
func (f Flags) Count() int {
	n := 0
	for _, done := range f {
		if done {
			n++
		}
	}
	return n
}

// Done informa si la etapa está completa; etapas fuera de rango cuentan como no completas.
func (f Flags) Done(s Stage) bool {
	if !s.Valid() {
		return false
	}
	return f[s]
}

// OverallStatus: todas completas → Completed, ninguna → Started, cualquier otra combinación → InProgress
// (incluye combinaciones fuera de orden, p. ej. envio=true con orçamento=false).
func OverallStatus(f Flags) Status {
	switch f.Count() {
	case StageCount:
		return StatusCompleted
	case 0:
		return StatusStarted
	default:
		return StatusInProgress
	}
}

var (
	hundred    = decimal.NewFromInt(100)
	stageTotal = decimal.NewFromInt(StageCount)
)

// CompletionPercent round(100*k/7, 1) con redondeo half-up (DivRound redondea alejándose de cero
// y k nunca es negativo). 4 etapas → 57.1; 7 → 100.
func CompletionPercent(f Flags) decimal.Decimal {
	return decimal.NewFromInt(int64(f.Count())).Mul(hundred).DivRound(stageTotal, 1)
}

// NextIncompleteStage primera etapa pendiente en el orden declarado, sin importar las posteriores.
func NextIncompleteStage(f Flags) (Stage, bool) {
	for i, done := range f {
		if !done {
			return Stage(i), true
		}
	}
	return 0, false
}

// NextIncompleteStageName código de la próxima etapa o AllStagesCompleted.
func NextIncompleteStageName(f Flags) string {
	s, ok := NextIncompleteStage(f)
	if !ok {
		return AllStagesCompleted
	}
	return s.Name()
}

// Advance marca como completa la primera etapa pendiente.
// Con todas las etapas completas devuelve los mismos flags y ok=false (no-op).
// La persistencia queda a cargo del llamador.
func Advance(f Flags) (next Flags, advanced Stage, ok bool) {
	s, pending := NextIncompleteStage(f)
	if !pending {
		return f, 0, false
	}
	f[s] = true
	return f, s, true
}

// CanPaySecondDeposit confecção concluida y pago del 2º sinal aún sin confirmar.
// paymentConfirmed es la confirmación de pago del portal, distinta de la etapa StageSecondDeposit.
func CanPaySecondDeposit(f Flags, paymentConfirmed bool) bool {
	return f[StageProduction] && !paymentConfirmed
}

// CanDownloadDocument confecção concluida, pago confirmado y laudo adjunto.
// Es mutuamente excluyente con CanPaySecondDeposit.
func CanDownloadDocument(f Flags, paymentConfirmed, hasDocument bool) bool {
	return f[StageProduction] && paymentConfirmed && hasDocument
}
