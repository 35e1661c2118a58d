package mypublisher

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/agentcommerce/lib/myevents"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

func (e enveloper) do(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	jsonPayload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error marshalling event-payload: %s", err)
	}
	envelope := myevents.EventEnvelope{
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(jsonPayload),
		Published:     false,
	}

	// Content addressed uid: publishing the same event twice yields one envelope
	envelope.UID = checksum(envelope)
	// Set after checksumming so a retry at a later moment still dedupes
	envelope.CreatedAt = e.nower.Now()

	return envelope, nil
}

func checksum(envlp myevents.EventEnvelope) string {
	sha2 := sha256.New()
	for _, part := range []string{envlp.Topic, envlp.EventTypeName, envlp.AggregateUID, envlp.EventPayload} {
		sha2.Write([]byte(part))
		sha2.Write([]byte{0})
	}
	return base64.RawURLEncoding.EncodeToString(sha2.Sum(nil))
}
