package invorto

import "context"

// CreateAgents creates the supplied configs one by one, in order. The first
// failure aborts the remainder and is returned as is; agents created before
// it stay committed on the server, no rollback is attempted.
func (c *Client) CreateAgents(ctx context.Context, configs []AgentConfig) ([]*Agent, error) {
	agents := make([]*Agent, 0, len(configs))
	for _, config := range configs {
		agent, err := c.CreateAgent(ctx, config)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

// CreateCalls starts the supplied calls one by one, in order, with the same
// first-failure-aborts semantics as CreateAgents.
func (c *Client) CreateCalls(ctx context.Context, opts []CallOptions) ([]map[string]any, error) {
	acks := make([]map[string]any, 0, len(opts))
	for _, o := range opts {
		ack, err := c.CreateCall(ctx, o)
		if err != nil {
			return nil, err
		}
		acks = append(acks, ack)
	}
	return acks, nil
}
