// Package pipeline deriva el estado de una venta a partir de sus siete etapas.
// Todas las funciones son puras y totales sobre las 2^7 combinaciones de flags:
// no hay orden forzado entre etapas y ninguna combinación produce error.
package pipeline

import "fmt"

// Stage índice de una etapa dentro del orden declarado del pipeline.
type Stage int

// Etapas en el orden del proceso: orçamento → venda → documentação → 1º sinal → confecção → 2º sinal → envio.
const (
	StageQuote Stage = iota
	StageSaleClosed
	StageDocumentation
	StageFirstDeposit
	StageProduction
	StageSecondDeposit
	StageShipped
)

// StageCount cantidad fija de etapas; nunca es cero.
const StageCount = 7

// AllStagesCompleted valor devuelto por NextIncompleteStageName cuando no queda nada pendiente.
const AllStagesCompleted = "All stages completed"

type stageInfo struct {
	name  string // código estable (API, métricas, filtros)
	label string // texto mostrado al personal y al cliente
}

var stages = [StageCount]stageInfo{
	StageQuote:         {name: "quote", label: "Orçamento"},
	StageSaleClosed:    {name: "sale_closed", label: "Venda Fechada"},
	StageDocumentation: {name: "documentation", label: "Documentação"},
	StageFirstDeposit:  {name: "first_deposit", label: "1º Sinal"},
	StageProduction:    {name: "production", label: "Confecção"},
	StageSecondDeposit: {name: "second_deposit", label: "2º Sinal"},
	StageShipped:       {name: "shipped", label: "Envio"},
}

// Stages devuelve las etapas en el orden declarado.
func Stages() []Stage {
	out := make([]Stage, StageCount)
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

// Valid informa si s es una de las siete etapas.
func (s Stage) Valid() bool { return s >= 0 && s < StageCount }

// Name código de la etapa ("production", "shipped", ...).
func (s Stage) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stages[s].name
}

// Label texto en portugués de la etapa.
func (s Stage) Label() string {
	if !s.Valid() {
		return ""
	}
	return stages[s].label
}

// ParseStage busca una etapa por su código.
func ParseStage(name string) (Stage, bool) {
	for i, info := range stages {
		if info.name == name {
			return Stage(i), true
		}
	}
	return 0, false
}

// AllStagesCompletedLabel texto mostrado cuando no queda ninguna etapa pendiente.
const AllStagesCompletedLabel = "Todas as etapas concluídas"

// NextIncompleteStageLabel etiqueta de la próxima etapa o AllStagesCompletedLabel.
func NextIncompleteStageLabel(f Flags) string {
	s, ok := NextIncompleteStage(f)
	if !ok {
		return AllStagesCompletedLabel
	}
	return s.Label()
}
