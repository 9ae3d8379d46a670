package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

func TestSession_ConnectPushesPlayerCount(t *testing.T) {
	// Given: a session with one player waiting in the public game
	sess := newTestSession(defaultTimeouts())
	recA := &recorderConn{}
	clientA := sess.Connect(recA)
	joinPublic(clientA)

	// When: a second client connects without joining anything
	recB := &recorderConn{}
	sess.Connect(recB)

	// Then: only the new client receives the connect-time count
	count := recB.lastPlayerCount()
	require.NotNil(t, count)
	assert.Equal(t, 1, count.Count)
	assert.Len(t, recB.all(), 1)
}

func TestSession_DisconnectBroadcastsPlayerCount(t *testing.T) {
	// Given: two connected clients, one in the public queue
	sess := newTestSession(defaultTimeouts())
	recA := &recorderConn{}
	clientA := sess.Connect(recA)
	recB := &recorderConn{}
	clientB := sess.Connect(recB)
	joinPublic(clientA)

	// When: the queued client disconnects
	clientA.HandleDisconnect()

	// Then: the remaining client observes the roster change
	count := recB.lastPlayerCount()
	require.NotNil(t, count)
	assert.Equal(t, 0, count.Count)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	assert.NotContains(t, sess.clients, clientA)
	assert.Contains(t, sess.clients, clientB)
}

func TestSession_PublicPlayerCountIncludesPlayingGames(t *testing.T) {
	// Given: a full public game already playing
	sess := newTestSession(defaultTimeouts())
	seatedClients(t, sess)

	// When: a third client joins the replacement public game
	recC := &recorderConn{}
	clientC := sess.Connect(recC)
	joinPublic(clientC)

	// Then: the count covers the playing pair and the new waiter
	count := recC.lastPlayerCount()
	require.NotNil(t, count)
	assert.Equal(t, 3, count.Count)
}

func TestSession_GameForJoin(t *testing.T) {
	sess := newTestSession(defaultTimeouts())

	t.Run("unknown id is rejected", func(t *testing.T) {
		sess.mu.Lock()
		defer sess.mu.Unlock()

		_, err := sess.gameForJoin("missing")
		require.Error(t, err)
	})

	t.Run("queued game with a free slot is joinable", func(t *testing.T) {
		client := sess.Connect(&recorderConn{})
		joinPrivate(client)

		sess.mu.Lock()
		defer sess.mu.Unlock()

		game, err := sess.gameForJoin(client.currentGame.id)
		require.NoError(t, err)
		assert.Equal(t, client.currentGame, game)
	})

	t.Run("started game is rejected", func(t *testing.T) {
		_, _, _, _, game := seatedClients(t, sess)

		sess.mu.Lock()
		defer sess.mu.Unlock()

		_, err := sess.gameForJoin(game.id)
		require.Error(t, err)
	})
}

func TestSession_Stats(t *testing.T) {
	// Given: a playing pair plus one waiting client
	sess := newTestSession(defaultTimeouts())
	seatedClients(t, sess)
	clientC := sess.Connect(&recorderConn{})
	joinPublic(clientC)

	// When: reading the stats snapshot
	stats := sess.Stats()

	// Then: it reflects clients, live games and public players
	assert.Equal(t, 3, stats.ConnectedClients)
	assert.Equal(t, 2, stats.LiveGames)
	assert.Equal(t, 3, stats.PublicPlayers)
}

func TestSession_InitialPublicGame(t *testing.T) {
	// Given/When: a fresh session
	sess := newTestSession(defaultTimeouts())

	// Then: one public game is already open in the queue
	sess.mu.Lock()
	defer sess.mu.Unlock()
	require.NotNil(t, sess.publicGame)
	assert.Equal(t, entity.PrivacyPublic, sess.publicGame.privacy)
	assert.Equal(t, entity.StatusQueue, sess.publicGame.status)
	assert.Contains(t, sess.games, sess.publicGame.id)
}
