package ports

// EventRecorder contadores de negocio (Prometheus en producción).
type EventRecorder interface {
	StageAdvanced(stage string)
	SecondDepositPaid()
	DocumentDownloaded()
	SupportMessage(ok bool)
}

// NopRecorder descarta los eventos (tests y CLI).
type NopRecorder struct{}

func (NopRecorder) StageAdvanced(string) {}
func (NopRecorder) SecondDepositPaid()   {}
func (NopRecorder) DocumentDownloaded()  {}
func (NopRecorder) SupportMessage(bool)  {}
