package mqtt

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Client publishes fleet events as JSON. A nil Client is a valid
// no-op publisher, which keeps the broker strictly optional.
type Client struct {
	client mqtt.Client
	log    *zap.Logger
}

func Init(broker string, enabled bool, log *zap.Logger) (*Client, error) {
	if !enabled {
		return nil, nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID("fleet-api")
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(1 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	log.Info("connected to MQTT broker", zap.String("broker", broker))
	return &Client{client: client, log: log}, nil
}

func (c *Client) Publish(topic string, payload interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	token := c.client.Publish(topic, 0, false, body)
	token.Wait()
	return token.Error()
}
