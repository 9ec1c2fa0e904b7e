package oracles

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module/irrecoverable"
	"github.com/gerreth/udacity-flight-surety/module/metrics"
	mockmodule "github.com/gerreth/udacity-flight-surety/module/mock"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
	"github.com/gerreth/udacity-flight-surety/utils/unittest"
)

type EngineSuite struct {
	suite.Suite

	accounts []common.Address
	indexes  map[common.Address]oracle.Indexes
	fee      *big.Int

	pool     *oracles.Pool
	contract *mockmodule.OracleContractClient
	measurer *mockmodule.StatusMeasurer

	// sinks handed to the watch calls
	sinkMu   sync.Mutex
	requests chan<- *oracle.StatusRequest
	reports  chan<- *oracle.Report
	watching sync.WaitGroup
	// fails the first request subscription
	dropRequests chan error

	submitted chan *oracle.StatusResponse

	engine *Engine
	cancel context.CancelFunc
}

func TestEngine(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.accounts = unittest.AddressListFixture(3)
	s.indexes = map[common.Address]oracle.Indexes{
		s.accounts[0]: {1, 5, 9},
		s.accounts[1]: {2, 5, 7},
		s.accounts[2]: {3, 4, 5},
	}
	s.fee = big.NewInt(1_000_000_000_000_000_000)

	s.pool = oracles.NewPool()
	s.contract = mockmodule.NewOracleContractClient(s.T())
	s.measurer = mockmodule.NewStatusMeasurer(s.T())
	s.measurer.On("Measure", mock.Anything).Return(oracle.StatusOnTime).Maybe()
	s.submitted = make(chan *oracle.StatusResponse, 100)
	s.dropRequests = make(chan error, 1)

	s.watching.Add(2)
	s.contract.On("WatchOracleRequests", mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, _ *uint64, sink chan<- *oracle.StatusRequest) (event.Subscription, error) {
			s.sinkMu.Lock()
			s.requests = sink
			s.sinkMu.Unlock()
			s.watching.Done()
			return droppableSubscription(s.dropRequests), nil
		}).Once()
	s.contract.On("WatchOracleReports", mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, _ *uint64, sink chan<- *oracle.Report) (event.Subscription, error) {
			s.sinkMu.Lock()
			s.reports = sink
			s.sinkMu.Unlock()
			s.watching.Done()
			return openSubscription(), nil
		}).Once()
	s.contract.On("SubmitOracleResponse", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			s.submitted <- args.Get(1).(*oracle.StatusResponse)
		}).
		Return(nil).Maybe()
}

// openSubscription stays open until unsubscribed.
func openSubscription() event.Subscription {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		return nil
	})
}

// droppableSubscription stays open until unsubscribed or until an error is sent on drop.
func droppableSubscription(drop <-chan error) event.Subscription {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		select {
		case err := <-drop:
			return err
		case <-quit:
			return nil
		}
	})
}

func (s *EngineSuite) expectRegistration(account common.Address, err error) {
	s.contract.On("RegisterOracle", mock.Anything, account, s.fee).Return(err).Once()
	if err == nil {
		s.contract.On("GetMyIndexes", mock.Anything, account).Return(s.indexes[account], nil).Once()
	}
}

func (s *EngineSuite) startEngine() {
	config := DefaultConfig()
	config.Accounts = s.accounts
	config.RegistrationFee = s.fee
	config.SubmissionTimeout = time.Second
	config.Subscriber = fastSubscriberConfig(true)

	engine, err := New(unittest.Logger(), metrics.NewNoopCollector(), s.pool, s.contract, s.measurer, config)
	s.Require().NoError(err)
	s.engine = engine

	ctx, cancel := irrecoverable.NewMockSignalerContextWithCancel(s.T(), context.Background())
	s.cancel = cancel
	s.engine.Start(ctx)

	unittest.RequireComponentsReadyBefore(s.T(), time.Second, s.engine)
	unittest.RequireReturnsBefore(s.T(), s.watching.Wait, time.Second, "subscriptions were not opened")
}

func (s *EngineSuite) TearDownTest() {
	if s.cancel != nil {
		s.cancel()
		unittest.RequireComponentsDoneBefore(s.T(), time.Second, s.engine)
	}
}

func (s *EngineSuite) deliver(request *oracle.StatusRequest) {
	s.sinkMu.Lock()
	defer s.sinkMu.Unlock()
	s.requests <- request
}

// collect waits for n submissions and makes sure no further submission follows.
func (s *EngineSuite) collect(n int) []*oracle.StatusResponse {
	responses := make([]*oracle.StatusResponse, 0, n)
	for len(responses) < n {
		select {
		case response := <-s.submitted:
			responses = append(responses, response)
		case <-time.After(time.Second):
			s.FailNow("missing submissions", "got %d of %d", len(responses), n)
		}
	}
	select {
	case response := <-s.submitted:
		s.FailNow("unexpected submission", "from %s", response.Oracle.Hex())
	case <-time.After(50 * time.Millisecond):
	}
	return responses
}

func oracleAccounts(responses []*oracle.StatusResponse) []common.Address {
	accounts := make([]common.Address, 0, len(responses))
	for _, response := range responses {
		accounts = append(accounts, response.Oracle)
	}
	return accounts
}

// Every identity is registered in order before any subscription is opened.
func (s *EngineSuite) TestRegistration() {
	var order []common.Address
	subscribedEarly := false
	for _, account := range s.accounts {
		account := account
		s.contract.On("RegisterOracle", mock.Anything, account, s.fee).
			Run(func(mock.Arguments) {
				s.sinkMu.Lock()
				defer s.sinkMu.Unlock()
				if s.requests != nil {
					subscribedEarly = true
				}
				order = append(order, account)
			}).
			Return(nil).Once()
		s.contract.On("GetMyIndexes", mock.Anything, account).Return(s.indexes[account], nil).Once()
	}

	s.startEngine()

	s.Require().False(subscribedEarly, "subscribed before registration finished")
	s.Require().Equal(s.accounts, order)
	s.Require().Equal(uint(3), s.pool.RegisteredCount())
	for _, identity := range s.pool.Identities() {
		s.Require().True(identity.Registered)
		s.Require().Equal(s.indexes[identity.Account], identity.Indexes)
	}
}

// A request is answered by exactly the registered identities holding its index.
func (s *EngineSuite) TestAnswersMatchingIdentities() {
	s.expectRegistration(s.accounts[0], nil)
	s.expectRegistration(s.accounts[1], errors.New("insufficient funds"))
	s.expectRegistration(s.accounts[2], nil)
	s.startEngine()

	s.Require().Equal(uint(2), s.pool.RegisteredCount())

	request := unittest.StatusRequestFixture(5)
	s.deliver(request)

	responses := s.collect(2)
	s.Require().ElementsMatch([]common.Address{s.accounts[0], s.accounts[2]}, oracleAccounts(responses))
	for _, response := range responses {
		s.Require().Equal(request.Airline, response.Airline)
		s.Require().Equal(request.Flight, response.Flight)
		s.Require().Equal(request.Timestamp, response.Timestamp)
		s.Require().Equal(oracle.StatusOnTime, response.StatusCode)
	}

	// nobody holds index 6
	s.deliver(unittest.StatusRequestFixture(6))
	s.collect(0)
}

// The same request delivered twice is answered twice.
func (s *EngineSuite) TestDuplicateDelivery() {
	for _, account := range s.accounts {
		s.expectRegistration(account, nil)
	}
	s.startEngine()

	request := unittest.StatusRequestFixture(9)
	s.deliver(request)
	s.deliver(request)

	responses := s.collect(2)
	s.Require().Equal([]common.Address{s.accounts[0], s.accounts[0]}, oracleAccounts(responses))
}

// Reports are consumed without triggering submissions.
func (s *EngineSuite) TestReports() {
	for _, account := range s.accounts {
		s.expectRegistration(account, nil)
	}
	s.startEngine()

	s.sinkMu.Lock()
	s.reports <- unittest.ReportFixture(oracle.StatusLateWeather)
	s.sinkMu.Unlock()

	s.collect(0)
}

// A dropped request subscription is replaced by one replaying from the last consumed block.
func (s *EngineSuite) TestResubscribesFromLastConsumedBlock() {
	for _, account := range s.accounts {
		s.expectRegistration(account, nil)
	}
	resubscribed := make(chan struct{})
	s.contract.On("WatchOracleRequests", mock.Anything, mock.MatchedBy(func(start *uint64) bool {
		return start != nil && *start == 42
	}), mock.Anything).
		Return(func(context.Context, *uint64, chan<- *oracle.StatusRequest) (event.Subscription, error) {
			close(resubscribed)
			return openSubscription(), nil
		}).Once()

	s.startEngine()

	request := unittest.StatusRequestFixture(9)
	request.BlockNumber = 42
	s.deliver(request)
	s.collect(1)

	s.dropRequests <- errors.New("connection lost")
	unittest.RequireCloseBefore(s.T(), resubscribed, time.Second, "request subscription was not replaced")
}

func TestNew_InvalidConfig(t *testing.T) {
	contract := mockmodule.NewOracleContractClient(t)
	measurer := mockmodule.NewStatusMeasurer(t)

	config := DefaultConfig()
	config.SubmissionWorkers = 0
	_, err := New(unittest.Logger(), metrics.NewNoopCollector(), oracles.NewPool(), contract, measurer, config)
	require.Error(t, err)

	config = DefaultConfig()
	config.SubmissionTimeout = 0
	_, err = New(unittest.Logger(), metrics.NewNoopCollector(), oracles.NewPool(), contract, measurer, config)
	require.Error(t, err)

	config = DefaultConfig()
	config.RegistrationFee = big.NewInt(-1)
	_, err = New(unittest.Logger(), metrics.NewNoopCollector(), oracles.NewPool(), contract, measurer, config)
	require.Error(t, err)

	config = DefaultConfig()
	config.Subscriber.Backoff = 0
	_, err = New(unittest.Logger(), metrics.NewNoopCollector(), oracles.NewPool(), contract, measurer, config)
	require.ErrorContains(t, err, "Backoff")

	config = DefaultConfig()
	config.Subscriber.BackoffMax = config.Subscriber.Backoff / 2
	_, err = New(unittest.Logger(), metrics.NewNoopCollector(), oracles.NewPool(), contract, measurer, config)
	require.ErrorContains(t, err, "BackoffMax")

	config = DefaultConfig()
	config.Subscriber.JitterPercent = 101
	_, err = New(unittest.Logger(), metrics.NewNoopCollector(), oracles.NewPool(), contract, measurer, config)
	require.ErrorContains(t, err, "JitterPercent")

	config = DefaultConfig()
	config.Subscriber.Resubscribe = false
	_, err = New(unittest.Logger(), metrics.NewNoopCollector(), oracles.NewPool(), contract, measurer, config)
	require.NoError(t, err)
}
