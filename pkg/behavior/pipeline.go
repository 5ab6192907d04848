package behavior

// Result reports what a dispatch did.
type Result struct {
	Targets   int
	Encoded   bool
	Activated int
}

// Pipeline owns the ordering of one trigger group: a single snapshot of the
// targets is encoded first and relayed second, synchronously.
type Pipeline struct {
	cfg     Config
	encoder *Encoder
	relay   *Relay
}

// NewPipeline wires an encoder and a relay over the same configuration.
func NewPipeline(cfg Config, activator Activator) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		encoder: NewEncoder(cfg),
		relay:   NewRelay(cfg, activator),
	}
}

// Config returns the trigger group configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Dispatch handles one change event. When encoding is skipped (empty field
// name) the relay is suppressed too, so no target is activated with a stale
// address.
func (p *Pipeline) Dispatch(ev ChangeEvent) Result {
	if p == nil || !p.cfg.accepts(ev) {
		return Result{}
	}
	targets := Targets(p.cfg)
	res := Result{Targets: targets.Len()}
	if !p.encoder.encode(targets, ev) {
		return res
	}
	res.Encoded = true
	res.Activated = p.relay.activate(targets)
	return res
}
