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

import (
	"io/ioutil"

	"github.com/ghodss/yaml"
)

// settingsFile is the on-disk shape of a smithy-build-style settings
// document; any field left unset falls back to the matching CLI flag.
type settingsFile struct {
	Model     string `json:"model"`
	Service   string `json:"service"`
	Out       string `json:"out"`
	Module    string `json:"module"`
	Gem       string `json:"gem"`
	Extensions []string `json:"extensions,omitempty"`
}

// LoadSettingsFile reads a JSON or YAML settings document at path into a
// Settings value. ghodss/yaml decodes YAML by first converting it to JSON,
// so both formats share the same struct tags.
func LoadSettingsFile(path string) (*Settings, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf settingsFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, err
	}
	return &Settings{
		ModelPath: sf.Model,
		ServiceId: sf.Service,
		OutDir:    sf.Out,
		Module:    sf.Module,
		Gem:       sf.Gem,
	}, nil
}

// MergeFlagOverrides applies any non-empty flag value over the settings
// loaded from a file, so a settings file supplies defaults and explicit
// CLI flags always win.
func (s *Settings) MergeFlagOverrides(model, service, out, module, gem string) {
	if model != "" {
		s.ModelPath = model
	}
	if service != "" {
		s.ServiceId = service
	}
	if out != "" {
		s.OutDir = out
	}
	if module != "" {
		s.Module = module
	}
	if gem != "" {
		s.Gem = gem
	}
}
