package app

import (
	"vidpilot/internal/notify"
	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
	"vidpilot/internal/social"
	"vidpilot/internal/state"
	"vidpilot/internal/storage"
	"vidpilot/internal/video"
	"vidpilot/pkg/config"
)

// Service holds the wired pipeline collaborators for one process.
type Service struct {
	cfg         *config.Config
	store       *state.CursorStore
	rows        sheet.Provider
	synthesizer script.Synthesizer
	producer    video.Producer
	publisher   social.Publisher
	notifier    notify.Notifier
	archive     storage.Archive
}

type ServiceOptions struct {
	Config      *config.Config
	Store       *state.CursorStore
	Rows        sheet.Provider
	Synthesizer script.Synthesizer
	Producer    video.Producer
	Publisher   social.Publisher
	Notifier    notify.Notifier
	Archive     storage.Archive
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:         opts.Config,
		store:       opts.Store,
		rows:        opts.Rows,
		synthesizer: opts.Synthesizer,
		producer:    opts.Producer,
		publisher:   opts.Publisher,
		notifier:    opts.Notifier,
		archive:     opts.Archive,
	}
}

func (s *Service) Config() *config.Config        { return s.cfg }
func (s *Service) Store() *state.CursorStore     { return s.store }
func (s *Service) Rows() sheet.Provider          { return s.rows }
func (s *Service) Synthesizer() script.Synthesizer { return s.synthesizer }
func (s *Service) Producer() video.Producer      { return s.producer }
func (s *Service) Publisher() social.Publisher   { return s.publisher }
func (s *Service) Notifier() notify.Notifier     { return s.notifier }
func (s *Service) Archive() storage.Archive      { return s.archive }

// Close releases background workers. Safe to call once per service.
func (s *Service) Close() {
	if s.notifier != nil {
		s.notifier.Close()
	}
}
