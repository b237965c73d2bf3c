/*
 Copyright 2026 LoftFS Authors.

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

package hierarchy

import (
	"fmt"

	"github.com/loftfs/loftfs/pkg/events"
	"github.com/loftfs/loftfs/pkg/types"
)

type entryEvent struct {
	entry      *types.Entry
	actionType string
}

func (m *manager) publicEntryActionEvent(actionType string, en *types.Entry) {
	m.eventQ <- &entryEvent{entry: en, actionType: actionType}
}

func (m *manager) entryActionEventHandler() {
	m.logger.Debugw("start entryActionEventHandler")
	for evt := range m.eventQ {
		if evt.entry == nil {
			m.logger.Errorw("handle entry event error: entry is empty", "action", evt.actionType)
			continue
		}
		events.Publish(events.EntryActionTopic(evt.actionType),
			events.BuildEntryEvent(evt.actionType, fmt.Sprintf("/entry/%d", evt.entry.ID), evt.entry))
	}
}
