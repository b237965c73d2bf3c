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

package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/hyponet/eventbus/bus"

	"github.com/loftfs/loftfs/pkg/types"
)

func BuildEntryEvent(actionType, source string, entry *types.Entry) *types.EntryEvent {
	return &types.EntryEvent{
		Id:          uuid.New().String(),
		Type:        actionType,
		Source:      source,
		SpecVersion: "1.0",
		Time:        time.Now(),
		RefID:       entry.ID,
		Data: types.EventData{
			ID:       entry.ID,
			OwnerID:  entry.OwnerID,
			Name:     entry.Name,
			IsFolder: entry.IsFolder,
		},
	}
}

func Publish(topic string, evt *types.EntryEvent) {
	bus.Publish(topic, evt)
}

func Subscribe(topic string, fn interface{}) string {
	return bus.Subscribe(topic, fn)
}

func Unsubscribe(lid string) {
	bus.Unsubscribe(lid)
}
