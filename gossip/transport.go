// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build zmq

package gossip

import (
	"context"
	"fmt"
	"sync"
	"time"

	zmq "github.com/go-zeromq/zmq4"
	"github.com/luxfi/ids"
)

// Handler processes an inbound Envelope. The receive loops do not
// identify the sending peer, so peer is always the zero NodeID; the
// envelope's Signer field names the sending validator.
type Handler func(peer ids.NodeID, env Envelope)

// Transport is the zmq4-backed gossip network: a PUB/SUB mesh for
// broadcast consensus messages, plus a ROUTER/DEALER pair for direct
// round-change re-sends and BPCI point-to-point delivery. Broadcast
// carries PRE-PREPARE/PREPARE/COMMIT fan-out; direct carries
// targeted re-requests to a single validator.
type Transport struct {
	nodeID ids.NodeID

	pub    zmq.Socket
	sub    zmq.Socket
	router zmq.Socket

	mu      sync.RWMutex
	dealers map[ids.NodeID]zmq.Socket
	handler Handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTransport binds the PUB and ROUTER sockets this validator
// publishes on at port and port+1000 respectively.
func NewTransport(nodeID ids.NodeID, port int) (*Transport, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pub := zmq.NewPub(ctx)
	if err := pub.Listen(fmt.Sprintf("tcp://0.0.0.0:%d", port)); err != nil {
		cancel()
		return nil, fmt.Errorf("gossip: bind pub: %w", err)
	}

	sub := zmq.NewSub(ctx)
	if err := sub.SetOption(zmq.OptionSubscribe, ""); err != nil {
		pub.Close()
		cancel()
		return nil, fmt.Errorf("gossip: sub subscribe: %w", err)
	}

	router := zmq.NewRouter(ctx)
	if err := router.Listen(fmt.Sprintf("tcp://0.0.0.0:%d", port+1000)); err != nil {
		pub.Close()
		sub.Close()
		cancel()
		return nil, fmt.Errorf("gossip: bind router: %w", err)
	}

	return &Transport{
		nodeID:  nodeID,
		pub:     pub,
		sub:     sub,
		router:  router,
		dealers: make(map[ids.NodeID]zmq.Socket),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Connect dials peer's PUB and ROUTER endpoints so peer's broadcasts
// reach this node's SUB socket and direct messages can reach peer's
// ROUTER through a new DEALER.
func (t *Transport) Connect(peer ids.NodeID, host string, port int) error {
	if err := t.sub.Dial(fmt.Sprintf("tcp://%s:%d", host, port)); err != nil {
		return fmt.Errorf("gossip: connect sub: %w", err)
	}
	dealer := zmq.NewDealer(t.ctx)
	if err := dealer.Dial(fmt.Sprintf("tcp://%s:%d", host, port+1000)); err != nil {
		return fmt.Errorf("gossip: connect dealer: %w", err)
	}
	t.mu.Lock()
	t.dealers[peer] = dealer
	t.mu.Unlock()
	return nil
}

// RegisterHandler installs the single handler invoked for every
// inbound envelope, broadcast or direct.
func (t *Transport) RegisterHandler(h Handler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

// Broadcast fans env out to every subscriber on the PUB socket.
func (t *Transport) Broadcast(env Envelope) error {
	return t.pub.Send(zmq.NewMsgFrom(env.Encode()))
}

// SendTo delivers env directly to peer over its DEALER connection.
func (t *Transport) SendTo(peer ids.NodeID, env Envelope) error {
	t.mu.RLock()
	dealer, ok := t.dealers[peer]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("gossip: no connection to peer %s", peer)
	}
	return dealer.Send(zmq.NewMsgFrom(env.Encode()))
}

// Start launches the broadcast and direct-message receive loops.
func (t *Transport) Start() {
	t.wg.Add(2)
	go t.recvLoop(t.sub, false)
	go t.recvLoop(t.router, true)
}

// Stop cancels both receive loops and closes every socket.
func (t *Transport) Stop() {
	t.cancel()
	t.wg.Wait()
	t.pub.Close()
	t.sub.Close()
	t.router.Close()
	t.mu.Lock()
	for _, d := range t.dealers {
		d.Close()
	}
	t.mu.Unlock()
}

func (t *Transport) recvLoop(sock zmq.Socket, routed bool) {
	defer t.wg.Done()
	for {
		select {
		case <-t.ctx.Done():
			return
		default:
		}
		msg, err := sock.Recv()
		if err != nil {
			if t.ctx.Err() != nil {
				return
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		frame := msg.Frames
		if routed {
			if len(frame) < 2 {
				continue
			}
			frame = frame[1:]
		}
		if len(frame) == 0 {
			continue
		}
		env, err := DecodeEnvelope(frame[0])
		if err != nil {
			continue
		}
		t.mu.RLock()
		h := t.handler
		t.mu.RUnlock()
		if h != nil {
			h(ids.NodeID{}, env)
		}
	}
}
