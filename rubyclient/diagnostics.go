/*
Copyright 2021 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package rubyclient

import "go.uber.org/zap"

// Diagnostics is the generator's warning sink: shape ids, skipped
// features, and protocol resolution are logged here with structured
// fields rather than bare text, since the generator runs as a build-time
// tool whose operator wants to grep a specific shape id or step out of the
// output.
type Diagnostics struct {
	log *zap.Logger
}

func NewDiagnostics(log *zap.Logger) *Diagnostics {
	if log == nil {
		log = zap.NewNop()
	}
	return &Diagnostics{log: log}
}

func (d *Diagnostics) SkippedShape(shapeId string, reason string) {
	d.log.Warn("skipped shape", zap.String("shape", shapeId), zap.String("reason", reason))
}

func (d *Diagnostics) ResolvedProtocol(serviceId string, protocolId string) {
	d.log.Info("resolved protocol", zap.String("service", serviceId), zap.String("protocol", protocolId))
}

func (d *Diagnostics) WroteFile(path string) {
	d.log.Debug("wrote file", zap.String("path", path))
}

func (d *Diagnostics) Sync() error {
	return d.log.Sync()
}
