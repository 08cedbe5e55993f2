// Command rlncsim gossips a file across a small peer mesh using the rlnc
// package's real GF(2^8) encoder and RREF decoder with lossy forwarding,
// then compares delivery against a Reed-Solomon baseline and plain
// (uncoded) flooding. Peers forward the coded packets they find innovative
// unchanged; no peer recodes.
package main

import (
	crand "crypto/rand"
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/reedsolomon"

	"github.com/swarna1101/rlnc"
)

const (
	fileSize = 64 * 1024 // 64 kB source payload
	k        = 16        // chunk count
	numPeers = 4
	fanout   = 2 // each peer forwards to 2 random peers
)

// Msg carries either a coded rlnc.Packet (RLNC mode) or a raw chunk
// (plain-gossip mode).
type Msg struct {
	Packet   *rlnc.Packet
	DataOnly []byte
}

type Peer struct {
	id             int
	inbox          chan Msg
	outChans       []chan Msg
	decoder        *rlnc.Decoder
	dupCount       int
	done           chan struct{}
	firstInnovTime time.Time
	receivedCount  int
}

func (p *Peer) run(wg *sync.WaitGroup, plain bool, startTime time.Time, lossProb float64) {
	defer wg.Done()
	receivedChunks := make(map[string]bool)

	for {
		select {
		case msg, ok := <-p.inbox:
			if !ok {
				return
			}
			if plain {
				if msg.DataOnly != nil {
					key := string(msg.DataOnly)
					if !receivedChunks[key] {
						receivedChunks[key] = true
						if p.receivedCount == 0 {
							p.firstInnovTime = time.Now()
						}
						p.receivedCount++
						p.forward(msg, lossProb)
					}
				}
				continue
			}

			rankBefore := p.decoder.Rank()
			if _, _, err := p.decoder.Decode(msg.Packet); err != nil {
				// Malformed packet (wrong dimensions); drop it.
				continue
			}
			if p.decoder.Rank() > rankBefore {
				if rankBefore == 0 {
					p.firstInnovTime = time.Now()
				}
				p.forward(msg, lossProb)
			} else {
				p.dupCount++
			}
		case <-p.done:
			return
		}
	}
}

func (p *Peer) forward(msg Msg, lossProb float64) {
	for _, ch := range p.outChans {
		if rand.Float64() < lossProb {
			continue
		}
		select {
		case ch <- msg:
		default:
		}
	}
}

func newPayload() []byte {
	src := make([]byte, fileSize)
	crand.Read(src)
	return src
}

func simulate(plain bool, lossProb float64) (avgInnov, avgDup float64, latencies []time.Duration) {
	payload := newPayload()
	enc, err := rlnc.NewEncoder(rlnc.GF256{}, payload, k)
	if err != nil {
		panic(err)
	}
	startTime := time.Now()

	peers := make([]*Peer, numPeers)
	for i := 0; i < numPeers; i++ {
		dec, err := rlnc.NewDecoder(enc.ChunkSize(), k)
		if err != nil {
			panic(err)
		}
		peers[i] = &Peer{
			id:      i,
			inbox:   make(chan Msg, 10000),
			decoder: dec,
			done:    make(chan struct{}),
		}
	}

	for _, p := range peers {
		for len(p.outChans) < fanout {
			q := peers[rand.Intn(numPeers)]
			if q != p {
				p.outChans = append(p.outChans, q.inbox)
			}
		}
	}

	var wg sync.WaitGroup
	for _, p := range peers {
		p.dupCount = 0
		wg.Add(1)
		go p.run(&wg, plain, startTime, lossProb)
	}

	if plain {
		chunkSize := enc.ChunkSize()
		for i := 0; i < k; i++ {
			end := (i + 1) * chunkSize
			if end > len(payload) {
				end = len(payload)
			}
			peers[0].forward(Msg{DataOnly: payload[i*chunkSize : end]}, lossProb)
		}
	} else {
		for i := 0; i < k*3; i++ {
			packet, err := enc.Encode(crand.Reader)
			if err != nil {
				panic(err)
			}
			peers[0].forward(Msg{Packet: packet}, lossProb)
		}
	}

	time.Sleep(2 * time.Second) // simple "quiesce"

	for _, p := range peers {
		close(p.done)
	}
	wg.Wait()

	for _, p := range peers {
		if plain {
			avgInnov += float64(p.receivedCount)
		} else {
			avgInnov += float64(p.decoder.Rank())
		}
		avgDup += float64(p.dupCount)
		if !p.firstInnovTime.IsZero() {
			latencies = append(latencies, p.firstInnovTime.Sub(startTime))
		}
	}
	avgInnov /= float64(numPeers)
	avgDup /= float64(numPeers)
	return
}

func simulateRS(lossProb float64) (avgInnov, avgDup float64, latencies []time.Duration) {
	n := k * 2
	enc, err := reedsolomon.New(k, n-k)
	if err != nil {
		panic(err)
	}

	src := newPayload()
	chunkSize := fileSize / k
	shards := make([][]byte, n)
	for i := 0; i < k; i++ {
		shards[i] = make([]byte, chunkSize)
		copy(shards[i], src[i*chunkSize:(i+1)*chunkSize])
	}
	for i := k; i < n; i++ {
		shards[i] = make([]byte, chunkSize)
	}
	if err := enc.Encode(shards); err != nil {
		panic(err)
	}

	peers := make([]map[string]bool, numPeers)
	dupCounts := make([]int, numPeers)
	firstTimes := make([]time.Time, numPeers)
	startTime := time.Now()

	for i := 0; i < n; i++ {
		for p := 0; p < numPeers; p++ {
			if rand.Float64() < lossProb {
				continue
			}
			if peers[p] == nil {
				peers[p] = make(map[string]bool)
			}
			key := string(shards[i])
			if !peers[p][key] {
				peers[p][key] = true
				if len(peers[p]) == 1 {
					firstTimes[p] = time.Now()
				}
			} else {
				dupCounts[p]++
			}
		}
	}

	for p := 0; p < numPeers; p++ {
		avgInnov += float64(len(peers[p]))
		avgDup += float64(dupCounts[p])
		if !firstTimes[p].IsZero() {
			latencies = append(latencies, firstTimes[p].Sub(startTime))
		}
	}
	avgInnov /= float64(numPeers)
	avgDup /= float64(numPeers)
	return
}

func computeLatencyStats(latencies []time.Duration) (p50, p95 time.Duration) {
	if len(latencies) == 0 {
		return 0, 0
	}
	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})
	p50 = latencies[len(latencies)*50/100]
	p95 = latencies[len(latencies)*95/100]
	return
}

// simulateMultihopRLNC sends 2k coded packets from the source through hops
// of independent per-packet loss and returns the rank a decoder at the
// destination reaches with the survivors. Relays forward surviving packets
// unchanged; they do not recode, and the chain stops early once fewer than
// k packets remain.
func simulateMultihopRLNC(lossProb float64, hops int) int {
	payload := newPayload()
	enc, err := rlnc.NewEncoder(rlnc.GF256{}, payload, k)
	if err != nil {
		panic(err)
	}

	dec, err := rlnc.NewDecoder(enc.ChunkSize(), k)
	if err != nil {
		panic(err)
	}

	curr := make([]*rlnc.Packet, 0, k*2)
	for i := 0; i < k*2; i++ {
		packet, err := enc.Encode(crand.Reader)
		if err != nil {
			panic(err)
		}
		curr = append(curr, packet)
	}

	for h := 0; h < hops; h++ {
		survived := curr[:0]
		for _, p := range curr {
			if rand.Float64() >= lossProb {
				survived = append(survived, p)
			}
		}
		curr = survived
		if len(curr) < k {
			break
		}
	}

	for _, p := range curr {
		dec.Decode(p)
	}
	return dec.Rank()
}

func simulateMultihopRS(lossProb float64, hops int) int {
	enc, err := reedsolomon.New(k, k)
	if err != nil {
		panic(err)
	}
	chunkSize := fileSize / k
	src := newPayload()
	shards := make([][]byte, k*2)
	for i := 0; i < k; i++ {
		shards[i] = make([]byte, chunkSize)
		copy(shards[i], src[i*chunkSize:(i+1)*chunkSize])
	}
	for i := k; i < k*2; i++ {
		shards[i] = make([]byte, chunkSize)
	}
	if err := enc.Encode(shards); err != nil {
		panic(err)
	}
	curr := shards
	for h := 0; h < hops; h++ {
		next := make([][]byte, 0, len(curr))
		for _, s := range curr {
			if rand.Float64() >= lossProb {
				next = append(next, s)
			}
		}
		curr = next
	}
	seen := make(map[string]struct{})
	for _, s := range curr {
		seen[string(s)] = struct{}{}
	}
	return len(seen)
}

func main() {
	lossProb := flag.Float64("loss", 0.0, "Packet loss probability (0.0 to 1.0)")
	codeType := flag.String("code", "rlnc", "Coding scheme: rlnc, rs, or plain")
	compare := flag.Bool("compare", false, "Compare RLNC, RS, and plain side by side")
	multihop := flag.Bool("multihop", false, "Run multi-hop chain simulation for RLNC and RS")
	hops := flag.Int("hops", 3, "Number of hops for multi-hop simulation")
	flag.Parse()

	rand.Seed(time.Now().UnixNano())

	if *multihop {
		fmt.Printf("Multi-hop simulation: %d hops, loss per hop: %.2f\n", *hops, *lossProb)
		innovRLNC := simulateMultihopRLNC(*lossProb, *hops)
		innovRS := simulateMultihopRS(*lossProb, *hops)
		fmt.Printf("RLNC rank at destination:     %d/%d\n", innovRLNC, k)
		fmt.Printf("RS innovative at destination: %d/%d\n", innovRS, k)
		return
	}

	fmt.Printf("Running simulation with:\n")
	fmt.Printf("  - Packet loss probability: %.2f\n", *lossProb)
	fmt.Printf("  - Field: GF(2^8)\n")

	if *compare {
		innovR, dupR, latR := simulate(false, *lossProb)
		p50R, p95R := computeLatencyStats(latR)
		innovS, dupS, latS := simulateRS(*lossProb)
		p50S, p95S := computeLatencyStats(latS)
		innovP, _, latP := simulate(true, *lossProb)
		p50P, p95P := computeLatencyStats(latP)
		fmt.Println("\n| Scheme | Avg Innovative | Avg Dups | Latency p50 | Latency p95 |")
		fmt.Println("|--------|----------------|----------|-------------|-------------|")
		fmt.Printf("| RLNC   | %.1f           | %.1f     | %v   | %v   |\n", innovR, dupR, p50R, p95R)
		fmt.Printf("| RS     | %.1f           | %.1f     | %v   | %v   |\n", innovS, dupS, p50S, p95S)
		fmt.Printf("| Plain  | %.1f           |    -     | %v   | %v   |\n", innovP, p50P, p95P)
		return
	}

	fmt.Printf("  - Coding scheme: %s\n", *codeType)

	switch *codeType {
	case "rlnc":
		innov, dup, latencies := simulate(false, *lossProb)
		p50, p95 := computeLatencyStats(latencies)
		fmt.Printf("RLNC   avg rank: %.1f  avg dups: %.1f\n", innov, dup)
		fmt.Printf("       latency p50: %v  p95: %v\n", p50, p95)
	case "rs":
		innov, dup, latencies := simulateRS(*lossProb)
		p50, p95 := computeLatencyStats(latencies)
		fmt.Printf("RS     avg innovative symbols: %.1f  avg dups: %.1f\n", innov, dup)
		fmt.Printf("       latency p50: %v  p95: %v\n", p50, p95)
	case "plain":
		innov, _, latencies := simulate(true, *lossProb)
		p50, p95 := computeLatencyStats(latencies)
		fmt.Printf("Plain  avg chunks received   : %.1f  (duplicates not tracked)\n", innov)
		fmt.Printf("       latency p50: %v  p95: %v\n", p50, p95)
	default:
		fmt.Println("Unknown code type. Use 'rlnc', 'rs', or 'plain'.")
	}
}
